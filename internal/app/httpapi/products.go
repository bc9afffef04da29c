package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/app/domain/catalog"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
)

type productPayload struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	BasePrice     float64  `json:"base_price"`
	ImageURL      string   `json:"image_url"`
	CategoryID    string   `json:"category_id"`
	CollectionIDs []string `json:"collection_ids"`
	IsNew         bool     `json:"is_new"`
	IsPublished   bool     `json:"is_published"`
}

func (p productPayload) toDomain(id string) catalog.Product {
	return catalog.Product{
		ID:            id,
		Name:          p.Name,
		Description:   p.Description,
		BasePrice:     p.BasePrice,
		ImageURL:      p.ImageURL,
		CategoryID:    p.CategoryID,
		CollectionIDs: p.CollectionIDs,
		IsNew:         p.IsNew,
		IsPublished:   p.IsPublished,
	}
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	filters := listquery.Filters{}
	stringFilters(r, filters, "category_id", "collection_id", "q")
	boolFilters(r, filters, "is_published", "is_new")
	ctrl := h.app.Products.List()
	applyListQuery(r, ctrl, filters)

	if err := h.app.Products.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, ctrl, h.app.Products.Items())
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Products.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	created, err := h.app.Products.Create(r.Context(), payload.toDomain(""))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Products.Update(r.Context(), payload.toDomain(pathID(r)))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Products.Delete(r.Context(), pathID(r)); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *handler) setInventory(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Levels []struct {
			ColorID  string `json:"color_id"`
			SizeID   string `json:"size_id"`
			Quantity int    `json:"quantity"`
		} `json:"levels"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	levels := make([]catalog.InventoryLevel, 0, len(payload.Levels))
	for _, l := range payload.Levels {
		levels = append(levels, catalog.InventoryLevel{ColorID: l.ColorID, SizeID: l.SizeID, Quantity: l.Quantity})
	}
	updated, err := h.app.Products.SetInventory(r.Context(), pathID(r), levels)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}
