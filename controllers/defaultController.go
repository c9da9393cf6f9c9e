package controllers

import (
	"net/http"

	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-gonic/gin"
)

// Controller serves the storefront session over HTTP.
type Controller struct {
	sf *stores.Storefront
}

func New(sf *stores.Storefront) *Controller {
	return &Controller{sf: sf}
}

func (c *Controller) GetHome(ctx *gin.Context) {
	message := `Welcome to the Amexan storefront ❤️.

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Sign in
- POST "/auth/logout" - Sign out
- GET "/auth/me" - Current user
- GET "/auth/check-email?email=" - Check if an email is registered
- PUT "/auth/profile" - Update profile
- POST "/auth/change-password" - Change password
- POST "/auth/avatar" - Upload avatar

CATALOG
- POST "/catalog/refresh" - Load products from the shop
- GET "/catalog" - Current page of products
- PUT "/catalog/filters" - Apply filters
- DELETE "/catalog/filters" - Clear filters
- PUT "/catalog/sort" - Change sort order
- GET "/catalog/search?q=" - Search products
- GET "/products/:id" - Product details

CART
- GET "/cart" - View cart
- POST "/cart/items" - Add to cart
- PATCH "/cart/items" - Change quantity
- DELETE "/cart/items" - Remove line
- DELETE "/cart" - Empty cart

CHECKOUT & ORDERS
- POST "/checkout" - Start checkout from the cart
- PUT "/checkout/shipping" - Set shipping address
- PUT "/checkout/payment" - Set payment method
- POST "/checkout/submit" - Place order
- GET "/orders" - Order history
- GET "/orders/:id" - Order details
- PATCH "/orders/:id/cancel" - Cancel order
- PATCH "/orders/:id/status" - Update order status

LISTS
- GET "/wishlist" - Wishlist
- POST "/wishlist/:productId" - Toggle wishlist entry
- GET "/recently-viewed" - Recently viewed products
- DELETE "/recently-viewed" - Clear recently viewed`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func (c *Controller) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
