package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
)

// --- categories -------------------------------------------------------------

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	binding := h.app.Taxonomy.Categories()
	applyListQuery(r, binding.Controller(), listquery.Filters{})
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Taxonomy.CreateCategory(r.Context(), catalog.Category{Name: payload.Name, Slug: payload.Slug})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Taxonomy.UpdateCategory(r.Context(), catalog.Category{ID: pathID(r), Name: payload.Name, Slug: payload.Slug})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Taxonomy.DeleteCategory(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// --- colors -----------------------------------------------------------------

func (h *handler) listColors(w http.ResponseWriter, r *http.Request) {
	binding := h.app.Taxonomy.Colors()
	applyListQuery(r, binding.Controller(), listquery.Filters{})
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) createColor(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Taxonomy.CreateColor(r.Context(), catalog.Color{Name: payload.Name, Hex: payload.Hex})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updateColor(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Taxonomy.UpdateColor(r.Context(), catalog.Color{ID: pathID(r), Name: payload.Name, Hex: payload.Hex})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteColor(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Taxonomy.DeleteColor(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// --- sizes ------------------------------------------------------------------

func (h *handler) listSizes(w http.ResponseWriter, r *http.Request) {
	binding := h.app.Taxonomy.Sizes()
	applyListQuery(r, binding.Controller(), listquery.Filters{})
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) createSize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		SortOrder int    `json:"sort_order"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Taxonomy.CreateSize(r.Context(), catalog.Size{Name: payload.Name, SortOrder: payload.SortOrder})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updateSize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		SortOrder int    `json:"sort_order"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Taxonomy.UpdateSize(r.Context(), catalog.Size{ID: pathID(r), Name: payload.Name, SortOrder: payload.SortOrder})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteSize(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Taxonomy.DeleteSize(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

// --- collections ------------------------------------------------------------

func (h *handler) listCollections(w http.ResponseWriter, r *http.Request) {
	binding := h.app.Taxonomy.Collections()
	applyListQuery(r, binding.Controller(), listquery.Filters{})
	if err := binding.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, binding.Controller(), binding.Items())
}

func (h *handler) createCollection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Taxonomy.CreateCollection(r.Context(), catalog.Collection{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updateCollection(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Description string `json:"description"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Taxonomy.UpdateCollection(r.Context(), catalog.Collection{
		ID:          pathID(r),
		Name:        payload.Name,
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Taxonomy.DeleteCollection(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}
