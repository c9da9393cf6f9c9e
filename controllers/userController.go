package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (c *Controller) GetWishlist(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"wishlist": c.sf.User.Wishlist()})
}

func (c *Controller) ToggleWishlist(ctx *gin.Context) {
	productID := ctx.Param("productId")
	added := c.sf.User.ToggleWishlist(productID)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"productId":  productID,
		"inWishlist": added,
		"wishlist":   c.sf.User.Wishlist(),
	})
}

func (c *Controller) GetRecentlyViewed(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{"recentlyViewed": c.sf.User.RecentlyViewed()})
}

func (c *Controller) ClearRecentlyViewed(ctx *gin.Context) {
	c.sf.User.ClearRecentlyViewed()
	sendJSONResponse(ctx, http.StatusOK, gin.H{"recentlyViewed": []string{}})
}
