package graphql

import (
	"context"

	"github.com/noizee/storefront/internal/app/domain/order"
	"github.com/noizee/storefront/internal/listquery"
)

func orderID(d orderDTO) string { return d.ID }

func (s *Store) ListOrders(ctx context.Context, p listquery.Params) ([]order.Order, int, error) {
	items, count, err := fetchPage[orderDTO](ctx, s, kindOrder, "Orders", queryOrders, "orders", p, orderID)
	if err != nil {
		return nil, 0, err
	}
	out := make([]order.Order, 0, len(items))
	for _, d := range items {
		out = append(out, d.toDomain())
	}
	return out, count, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (order.Order, error) {
	d, err := fetchOne[orderDTO](ctx, s, kindOrder, "Order", queryOrder, "order", id)
	if err != nil {
		return order.Order{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) (order.Order, error) {
	vars := map[string]interface{}{"id": id, "status": status}
	d, err := mutateUpdate[orderDTO](ctx, s, kindOrder, "UpdateOrderStatus", mutationUpdateOrderStatus, "updateOrderStatus", vars, orderID)
	if err != nil {
		return order.Order{}, err
	}
	return d.toDomain(), nil
}

func (s *Store) PlaceOrder(ctx context.Context, o order.Order) (order.Order, error) {
	vars := map[string]interface{}{"input": orderInput(o)}
	d, err := mutateCreate[orderDTO](ctx, s, kindOrder, "PlaceOrder", mutationPlaceOrder, "placeOrder", vars, orderID)
	if err != nil {
		return order.Order{}, err
	}
	return d.toDomain(), nil
}
