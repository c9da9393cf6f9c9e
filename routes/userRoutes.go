package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/wishlist", c.GetWishlist)
	server.POST("/wishlist/:productId", c.ToggleWishlist)
	server.GET("/recently-viewed", c.GetRecentlyViewed)
	server.DELETE("/recently-viewed", c.ClearRecentlyViewed)
}
