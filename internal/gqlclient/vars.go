package gqlclient

import "github.com/noizee/storefront/internal/listquery"

// ListVariables converts a parameter snapshot into the variables every list
// query of the backend accepts: {limit, offset, filter, sort}. Pagination is
// always offset-based; the backend exposes no cursors.
func ListVariables(p listquery.Params) map[string]interface{} {
	vars := map[string]interface{}{
		"limit":  p.Limit,
		"offset": p.Offset,
	}
	if len(p.Filters) > 0 {
		vars["filter"] = map[string]interface{}(p.Filters)
	}
	if p.SortField != "" {
		vars["sort"] = map[string]interface{}{
			"field":     p.SortField,
			"direction": string(p.SortDirection),
		}
	}
	return vars
}
