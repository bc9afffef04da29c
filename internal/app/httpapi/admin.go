package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/httputil"
)

// cacheStats exposes the entity cache counters for the admin diagnostics
// panel.
func (h *handler) cacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.app.Cache.Stats()
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"hits":      stats.Hits,
		"misses":    stats.Misses,
		"evictions": stats.Evictions,
		"expired":   stats.Expired,
		"entities":  stats.Entities,
		"lists":     stats.Lists,
	})
}

// upload accepts one multipart image and relays it to the asset endpoint.
func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		h.log.WithError(err).Warn("upload rejected")
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}
