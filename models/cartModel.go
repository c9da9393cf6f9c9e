package models

// LineKey identifies a cart line. Two adds with the same key merge.
type LineKey struct {
	ProductID string `json:"productId"`
	SizeID    string `json:"sizeId"`
	ColorID   string `json:"colorId"`
}

// CartItem keeps the product, size and color as they were when added, so
// later catalog price changes do not move the cart total.
type CartItem struct {
	Product  Product `json:"product"`
	Size     Size    `json:"size"`
	Color    Color   `json:"color"`
	Quantity int     `json:"quantity"`
}

func (c CartItem) Key() LineKey {
	return LineKey{ProductID: c.Product.ID, SizeID: c.Size.ID, ColorID: c.Color.ID}
}

func (c CartItem) Subtotal() int64 {
	return c.Product.Price * int64(c.Quantity)
}
