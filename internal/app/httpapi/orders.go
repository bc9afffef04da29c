package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/listquery"
)

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filters := listquery.Filters{}
	stringFilters(r, filters, "status", "customer_id")
	ctrl := h.app.Orders.List()
	applyListQuery(r, ctrl, filters)
	if err := h.app.Orders.Refresh(r.Context()); err != nil {
		h.writeErr(w, err)
		return
	}
	h.writePage(w, ctrl, h.app.Orders.Items())
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.app.Orders.Get(r.Context(), pathID(r))
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, o)
}

func (h *handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	updated, err := h.app.Orders.UpdateStatus(r.Context(), pathID(r), payload.Status)
	if err != nil {
		h.writeErr(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, updated)
}

// checkout turns the current cart into an order and empties the cart. The
// body is optional; it may attach the buyer's account.
func (h *handler) checkout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CustomerID string `json:"customer_id"`
	}
	if err := httputil.DecodeJSON(r, &payload, 0); err != nil && !errors.Is(err, io.EOF) {
		httputil.BadRequest(w, err.Error())
		return
	}

	entries := h.app.Cart.Entries()
	if len(entries) == 0 {
		httputil.BadRequest(w, "cart is empty")
		return
	}
	lines := make([]order.Line, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, order.Line{
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			ColorID:     e.ColorID,
			SizeID:      e.SizeID,
			Quantity:    e.Quantity,
			UnitPrice:   e.UnitPrice,
		})
	}

	placed, err := h.app.Orders.Place(r.Context(), order.Order{CustomerID: payload.CustomerID, Lines: lines})
	if err != nil {
		h.writeErr(w, err)
		return
	}
	if err := h.app.Cart.Clear(r.Context()); err != nil {
		h.log.WithError(err).Warn("clearing cart after checkout failed")
	}
	httputil.WriteJSON(w, http.StatusCreated, placed)
}
