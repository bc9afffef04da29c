package httpapi

import (
	"net/http"

	"github.com/noizee/storefront/internal/app/domain/cart"
	"github.com/noizee/storefront/internal/httputil"
)

// cartResponse is the full cart state every cart mutation returns, so the
// storefront can redraw the panel and badge from one response.
type cartResponse struct {
	Items     []cart.Entry `json:"items"`
	Subtotal  float64      `json:"subtotal"`
	ItemCount int          `json:"item_count"`
	Open      bool         `json:"open"`
}

func (h *handler) cartState() cartResponse {
	entries := h.app.Cart.Entries()
	if entries == nil {
		entries = []cart.Entry{}
	}
	return cartResponse{
		Items:     entries,
		Subtotal:  h.app.Cart.Subtotal(),
		ItemCount: h.app.Cart.ItemCount(),
		Open:      h.app.Cart.IsOpen(),
	}
}

func (h *handler) getCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

type cartLineRequest struct {
	ProductID string `json:"product_id"`
	ColorID   string `json:"color_id"`
	SizeID    string `json:"size_id"`
	Quantity  int    `json:"quantity"`
}

// addCartItem resolves the product so the cart line carries the price and
// display fields the visitor saw, then delegates the merge to the cart.
func (h *handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	product, err := h.app.Products.Get(r.Context(), req.ProductID)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if err := h.app.Cart.Add(r.Context(), product, req.ColorID, req.SizeID, req.Quantity); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

func (h *handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartLineRequest
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := h.app.Cart.SetQuantity(r.Context(), req.ProductID, req.ColorID, req.SizeID, req.Quantity); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

// removeCartItem identifies the line through query parameters since DELETE
// requests carry no body.
func (h *handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if err := h.app.Cart.Remove(r.Context(), q.Get("product_id"), q.Get("color_id"), q.Get("size_id")); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

func (h *handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Cart.Clear(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

func (h *handler) openCart(w http.ResponseWriter, r *http.Request) {
	h.app.Cart.OpenPanel()
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

func (h *handler) closeCart(w http.ResponseWriter, r *http.Request) {
	h.app.Cart.ClosePanel()
	httputil.WriteJSON(w, http.StatusOK, h.cartState())
}

func (h *handler) getLanguage(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"language": h.app.Prefs.Language()})
}

func (h *handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := httputil.DecodeJSON(r, &req, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := h.app.Prefs.SetLanguage(r.Context(), req.Language); err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"language": h.app.Prefs.Language()})
}
