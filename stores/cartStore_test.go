package stores

import (
	"context"
	"testing"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItemMergesSameLine(t *testing.T) {
	cart := NewCartStore(nil)
	p := testProduct("p1", 10000)

	cart.AddItem(p, sizeM, colorBk, 2)
	line := cart.AddItem(p, sizeM, colorBk, 3)

	assert.Equal(t, 5, line.Quantity)
	require.Len(t, cart.Items(), 1)
	assert.Equal(t, 5, cart.TotalItems())
}

func TestCartAddItemSeparatesSizes(t *testing.T) {
	cart := NewCartStore(nil)
	p := testProduct("p1", 10000)

	cart.AddItem(p, sizeM, colorBk, 1)
	cart.AddItem(p, sizeL, colorBk, 0)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 2, cart.ItemCount("p1"))
	assert.Equal(t, 0, cart.ItemCount("p2"))
}

func TestCartTotalPriceUsesSnapshot(t *testing.T) {
	cart := NewCartStore(nil)
	p := testProduct("p1", 12000)
	cart.AddItem(p, sizeM, colorBk, 2)
	cart.AddItem(testProduct("p2", 5000), sizeM, colorBk, 1)

	p.Price = 99000
	assert.Equal(t, int64(29000), cart.TotalPrice())
}

func TestCartUpdateQuantity(t *testing.T) {
	cart := NewCartStore(nil)
	p := testProduct("p1", 10000)
	cart.AddItem(p, sizeM, colorBk, 2)
	key := models.LineKey{ProductID: "p1", SizeID: "m", ColorID: "bk"}

	cart.UpdateQuantity(key, 7)
	assert.Equal(t, 7, cart.TotalItems())

	cart.UpdateQuantity(models.LineKey{ProductID: "missing"}, 3)
	assert.Equal(t, 7, cart.TotalItems())

	cart.UpdateQuantity(key, 0)
	assert.Empty(t, cart.Items())
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCartStore(nil)
	cart.AddItem(testProduct("p1", 1000), sizeM, colorBk, 1)
	cart.AddItem(testProduct("p2", 1000), sizeM, colorBk, 1)

	cart.RemoveItem(models.LineKey{ProductID: "p1", SizeID: "m", ColorID: "bk"})
	cart.RemoveItem(models.LineKey{ProductID: "p1", SizeID: "m", ColorID: "bk"})
	require.Len(t, cart.Items(), 1)

	cart.Clear()
	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.TotalPrice())
}

func TestCartPersistsLinesOnly(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStorage()

	cart := NewCartStore(mem)
	cart.AddItem(testProduct("p1", 8000), sizeM, colorBk, 3)
	cart.Open()

	restored := NewCartStore(mem)
	require.NoError(t, restored.Restore(ctx))
	assert.Equal(t, 3, restored.TotalItems())
	assert.Equal(t, int64(24000), restored.TotalPrice())
	assert.False(t, restored.IsOpen())
}

func TestCartToggle(t *testing.T) {
	cart := NewCartStore(nil)
	assert.True(t, cart.Toggle())
	assert.False(t, cart.Toggle())
	cart.Open()
	assert.True(t, cart.IsOpen())
	cart.Close()
	assert.False(t, cart.IsOpen())
}
