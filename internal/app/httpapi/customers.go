package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
)

func (h *handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	filters := listquery.Filters{}
	stringFilters(r, filters, "q")
	boolFilters(r, filters, "is_admin")
	ctrl := h.app.Customers.List()
	applyListQuery(r, ctrl, filters)
	if err := h.app.Customers.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, ctrl, h.app.Customers.Items())
}

func (h *handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.app.Customers.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}
