package controllers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/Kariqs/amexan-storefront/utils"
	"github.com/gin-gonic/gin"
)

type cartLineInput struct {
	ProductID string `json:"productId" binding:"required"`
	SizeID    string `json:"sizeId"`
	ColorID   string `json:"colorId"`
	Quantity  int    `json:"quantity"`
}

func (in cartLineInput) key() models.LineKey {
	return models.LineKey{ProductID: in.ProductID, SizeID: in.SizeID, ColorID: in.ColorID}
}

var errOptionUnavailable = errors.New("option unavailable")

// pickOptions resolves the requested size and color against the product.
// Products without any listed sizes or colors accept the ids as given.
func pickOptions(p models.Product, sizeID, colorID string) (models.Size, models.Color, error) {
	size := models.Size{ID: sizeID, Available: true}
	if len(p.Sizes) > 0 {
		i := slices.IndexFunc(p.Sizes, func(s models.Size) bool { return s.ID == sizeID })
		if i < 0 || !p.Sizes[i].Available {
			return models.Size{}, models.Color{}, errOptionUnavailable
		}
		size = p.Sizes[i]
	}
	color := models.Color{ID: colorID, Available: true}
	if len(p.Colors) > 0 {
		i := slices.IndexFunc(p.Colors, func(c models.Color) bool { return c.ID == colorID })
		if i < 0 || !p.Colors[i].Available {
			return models.Size{}, models.Color{}, errOptionUnavailable
		}
		color = p.Colors[i]
	}
	return size, color, nil
}

func (c *Controller) cartView() gin.H {
	total := c.sf.Cart.TotalPrice()
	return gin.H{
		"items":          c.sf.Cart.Items(),
		"totalItems":     c.sf.Cart.TotalItems(),
		"totalPrice":     total,
		"formattedTotal": utils.FormatPrice(total),
	}
}

func (c *Controller) GetCart(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": c.cartView()})
}

func (c *Controller) AddCartItem(ctx *gin.Context) {
	var in cartLineInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	product, err := c.lookupProduct(ctx, in.ProductID)
	if err != nil {
		respondWithStoreError(ctx, err)
		return
	}
	size, color, err := pickOptions(product, in.SizeID, in.ColorID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgOptionUnavailable)
		return
	}

	item := c.sf.Cart.AddItem(product, size, color, in.Quantity)
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": product.Name + " added to cart",
		"item":    item,
		"cart":    c.cartView(),
	})
}

func (c *Controller) UpdateCartItem(ctx *gin.Context) {
	var in cartLineInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	c.sf.Cart.UpdateQuantity(in.key(), in.Quantity)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": c.cartView()})
}

func (c *Controller) RemoveCartItem(ctx *gin.Context) {
	var in cartLineInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	c.sf.Cart.RemoveItem(in.key())
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": c.cartView()})
}

func (c *Controller) ClearCart(ctx *gin.Context) {
	c.sf.Cart.Clear()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": c.cartView()})
}
