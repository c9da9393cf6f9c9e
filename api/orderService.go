package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Kariqs/amexan-storefront/models"
)

const IdempotencyHeader = "X-Idempotency-Key"

type createOrderRequest struct {
	Items           []models.OrderItem      `json:"items"`
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   models.PaymentMethod    `json:"paymentMethod"`
	TotalAmount     int64                   `json:"totalAmount"`
	ShippingFee     int64                   `json:"shippingFee"`
	DiscountAmount  int64                   `json:"discountAmount"`
	PointsUsed      int64                   `json:"pointsUsed"`
}

// CreateOrder submits a draft. The draft's idempotency key lets the backend
// collapse a retried submission into the original order.
func (c *Client) CreateOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error) {
	body := createOrderRequest{
		Items:           draft.Items,
		ShippingAddress: draft.ShippingAddress,
		PaymentMethod:   draft.PaymentMethod,
		TotalAmount:     draft.TotalAmount,
		ShippingFee:     draft.ShippingFee,
		DiscountAmount:  draft.DiscountAmount,
		PointsUsed:      draft.PointsUsed,
	}
	var opts []requestOption
	if draft.IdempotencyKey != "" {
		opts = append(opts, withHeader(IdempotencyHeader, draft.IdempotencyKey))
	}
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/orders", body, &order, opts...)
	return order, err
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/orders", nil, &orders)
	return orders, err
}

func (c *Client) Order(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodGet, "/order/"+url.PathEscape(id), nil, &order)
	return order, err
}

func (c *Client) CancelOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	body := map[string]models.OrderStatus{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}
