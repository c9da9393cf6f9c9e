package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/google/uuid"
)

const OrderNamespace = "order-storage"

var (
	ErrNoDraft           = errors.New("no order draft")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrSubmitInProgress  = errors.New("order submission already in progress")
)

type OrderBackend interface {
	CreateOrder(ctx context.Context, draft models.OrderDraft) (models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
	Order(ctx context.Context, id string) (models.Order, error)
	CancelOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// CartClearer is the part of the cart an order needs once it is placed.
type CartClearer interface {
	Clear()
}

type orderSnapshot struct {
	ShippingAddress *models.ShippingAddress `json:"shippingAddress"`
}

type OrderStore struct {
	backend OrderBackend
	cart    CartClearer
	persist *persister

	mu              sync.Mutex
	draft           *models.OrderDraft
	orders          []models.Order
	shippingAddress *models.ShippingAddress
	submitting      bool
}

func NewOrderStore(backend OrderBackend, cart CartClearer, s storage.Storage) *OrderStore {
	return &OrderStore{
		backend: backend,
		cart:    cart,
		persist: newPersister(s, OrderNamespace, "order-store"),
	}
}

func (o *OrderStore) Restore(ctx context.Context) error {
	var snap orderSnapshot
	ok, err := o.persist.load(ctx, &snap)
	if err != nil || !ok {
		return err
	}
	o.mu.Lock()
	o.shippingAddress = snap.ShippingAddress
	o.mu.Unlock()
	return nil
}

// CreateOrder builds a fresh draft from cart lines, replacing any previous
// draft. The remembered shipping address is attached when there is one.
// The draft in flight is never replaced while SubmitOrder is running.
func (o *OrderStore) CreateOrder(lines []models.CartItem) (models.OrderDraft, error) {
	draft := models.OrderDraft{
		Items:          make([]models.OrderItem, 0, len(lines)),
		IdempotencyKey: uuid.NewString(),
	}
	for _, line := range lines {
		draft.Items = append(draft.Items, models.OrderItem{
			Product:  line.Product,
			Size:     line.Size,
			Color:    line.Color,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
		draft.TotalAmount += line.Product.Price * int64(line.Quantity)
	}
	draft.ShippingFee = models.ShippingFeeFor(draft.TotalAmount)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.submitting {
		return models.OrderDraft{}, ErrSubmitInProgress
	}
	if o.shippingAddress != nil {
		addr := *o.shippingAddress
		draft.ShippingAddress = &addr
	}
	o.draft = &draft
	return draft, nil
}

// SetShippingAddress updates the draft and remembers the address for the
// next checkout.
func (o *OrderStore) SetShippingAddress(addr models.ShippingAddress) {
	o.mu.Lock()
	if o.draft != nil {
		draftAddr := addr
		o.draft.ShippingAddress = &draftAddr
	}
	o.shippingAddress = &addr
	pending := o.persist.snapshot(orderSnapshot{ShippingAddress: o.shippingAddress})
	o.mu.Unlock()
	pending.write()
}

func (o *OrderStore) SetPaymentMethod(method models.PaymentMethod) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.draft != nil {
		o.draft.PaymentMethod = method
	}
}

func (o *OrderStore) Draft() (models.OrderDraft, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.draft == nil {
		return models.OrderDraft{}, false
	}
	return *o.draft, true
}

func (o *OrderStore) ShippingAddress() (models.ShippingAddress, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.shippingAddress == nil {
		return models.ShippingAddress{}, false
	}
	return *o.shippingAddress, true
}

func (o *OrderStore) Orders() []models.Order {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.orders)
}

// SubmitOrder sends the draft to the backend. On success the order joins the
// history and both the draft and the cart are cleared. On failure the draft
// and cart are left as they were.
func (o *OrderStore) SubmitOrder(ctx context.Context) (models.Order, error) {
	o.mu.Lock()
	if o.draft == nil {
		o.mu.Unlock()
		return models.Order{}, ErrNoDraft
	}
	if o.submitting {
		o.mu.Unlock()
		return models.Order{}, ErrSubmitInProgress
	}
	o.submitting = true
	draft := *o.draft
	o.mu.Unlock()

	order, err := o.backend.CreateOrder(ctx, draft)

	o.mu.Lock()
	o.submitting = false
	if err != nil {
		o.mu.Unlock()
		return models.Order{}, fmt.Errorf("submit order: %w", err)
	}
	o.upsertLocked(order)
	if o.draft != nil && o.draft.IdempotencyKey == draft.IdempotencyKey {
		o.draft = nil
	}
	o.mu.Unlock()

	o.cart.Clear()
	return order, nil
}

func (o *OrderStore) upsertLocked(order models.Order) {
	if i := o.indexLocked(order.ID); i >= 0 {
		o.orders[i] = order
		return
	}
	o.orders = append(o.orders, order)
}

func (o *OrderStore) indexLocked(id string) int {
	return slices.IndexFunc(o.orders, func(order models.Order) bool { return order.ID == id })
}

// FetchOrders replaces the local history with the backend's.
func (o *OrderStore) FetchOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := o.backend.Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	o.mu.Lock()
	o.orders = slices.Clone(orders)
	o.mu.Unlock()
	return orders, nil
}

func (o *OrderStore) FetchOrder(ctx context.Context, id string) (models.Order, error) {
	order, err := o.backend.Order(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("fetch order %s: %w", id, err)
	}
	o.mu.Lock()
	o.upsertLocked(order)
	o.mu.Unlock()
	return order, nil
}

// CancelOrder cancels a known, non-terminal order. The local status only
// changes after the backend accepts the cancellation.
func (o *OrderStore) CancelOrder(ctx context.Context, id string) error {
	return o.transition(ctx, id, models.OrderCanceled, o.backend.CancelOrder)
}

func (o *OrderStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return o.transition(ctx, id, status, func(ctx context.Context, id string) error {
		return o.backend.UpdateOrderStatus(ctx, id, status)
	})
}

func (o *OrderStore) transition(ctx context.Context, id string, next models.OrderStatus, call func(context.Context, string) error) error {
	o.mu.Lock()
	i := o.indexLocked(id)
	if i < 0 {
		o.mu.Unlock()
		return ErrOrderNotFound
	}
	current := o.orders[i].OrderStatus
	o.mu.Unlock()

	if !current.CanTransition(next) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, next)
	}
	if err := call(ctx, id); err != nil {
		return fmt.Errorf("order %s to %s: %w", id, next, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if i := o.indexLocked(id); i >= 0 {
		o.orders[i].OrderStatus = next
		o.orders[i].UpdatedAt = time.Now()
	}
	return nil
}

// Reset drops the draft, history and remembered address of the signed-out user.
func (o *OrderStore) Reset() {
	o.mu.Lock()
	o.draft = nil
	o.orders = nil
	o.shippingAddress = nil
	pending := o.persist.removal()
	o.mu.Unlock()
	pending.write()
}
