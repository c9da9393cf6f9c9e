package stores

import (
	"context"
	"slices"
	"sync"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
)

const CartNamespace = "cart-storage"

type cartSnapshot struct {
	Items []models.CartItem `json:"items"`
}

// CartStore holds the cart lines. At most one line exists per LineKey and
// every line has a quantity of at least one.
type CartStore struct {
	mu      sync.Mutex
	items   []models.CartItem
	isOpen  bool
	persist *persister
}

func NewCartStore(s storage.Storage) *CartStore {
	return &CartStore{
		persist: newPersister(s, CartNamespace, "cart-store"),
	}
}

// Restore loads the persisted lines, dropping any that would break the
// one-line-per-key rule.
func (c *CartStore) Restore(ctx context.Context) error {
	var snap cartSnapshot
	ok, err := c.persist.load(ctx, &snap)
	if err != nil || !ok {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = c.items[:0]
	for _, item := range snap.Items {
		if item.Quantity <= 0 || c.indexOf(item.Key()) >= 0 {
			continue
		}
		c.items = append(c.items, item)
	}
	return nil
}

func (c *CartStore) indexOf(key models.LineKey) int {
	return slices.IndexFunc(c.items, func(item models.CartItem) bool { return item.Key() == key })
}

// mutate runs fn under the lock and, when fn reports a change, persists the
// resulting lines after unlocking.
func (c *CartStore) mutate(fn func() bool) {
	var pending pendingWrite
	c.mu.Lock()
	if fn() {
		pending = c.persist.snapshot(cartSnapshot{Items: c.items})
	}
	c.mu.Unlock()
	pending.write()
}

// AddItem merges into the line with the same product, size and color or
// appends a new one. A quantity below one counts as one.
func (c *CartStore) AddItem(product models.Product, size models.Size, color models.Color, quantity int) models.CartItem {
	if quantity <= 0 {
		quantity = 1
	}
	key := models.LineKey{ProductID: product.ID, SizeID: size.ID, ColorID: color.ID}
	var line models.CartItem
	c.mutate(func() bool {
		if i := c.indexOf(key); i >= 0 {
			c.items[i].Quantity += quantity
			line = c.items[i]
			return true
		}
		line = models.CartItem{Product: product, Size: size, Color: color, Quantity: quantity}
		c.items = append(c.items, line)
		return true
	})
	return line
}

func (c *CartStore) RemoveItem(key models.LineKey) {
	c.mutate(func() bool { return c.removeLocked(key) })
}

func (c *CartStore) removeLocked(key models.LineKey) bool {
	i := c.indexOf(key)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// UpdateQuantity overwrites a line's quantity. Zero or less removes the line.
func (c *CartStore) UpdateQuantity(key models.LineKey, quantity int) {
	c.mutate(func() bool {
		if quantity <= 0 {
			return c.removeLocked(key)
		}
		i := c.indexOf(key)
		if i < 0 {
			return false
		}
		c.items[i].Quantity = quantity
		return true
	})
}

func (c *CartStore) Clear() {
	c.mutate(func() bool {
		c.items = nil
		return true
	})
}

func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

func (c *CartStore) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums the add-time price snapshots.
func (c *CartStore) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount sums quantities across every size and color of one product.
func (c *CartStore) ItemCount(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, item := range c.items {
		if item.Product.ID == productID {
			count += item.Quantity
		}
	}
	return count
}

func (c *CartStore) Open()  { c.setOpen(true) }
func (c *CartStore) Close() { c.setOpen(false) }

func (c *CartStore) setOpen(open bool) {
	c.mu.Lock()
	c.isOpen = open
	c.mu.Unlock()
}

func (c *CartStore) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = !c.isOpen
	return c.isOpen
}

func (c *CartStore) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}
