package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, c *controllers.Controller) {
	server.GET("/cart", c.GetCart)
	server.DELETE("/cart", c.ClearCart)
	server.POST("/cart/items", c.AddCartItem)
	server.PATCH("/cart/items", c.UpdateCartItem)
	server.DELETE("/cart/items", c.RemoveCartItem)
}
