package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, c *controllers.Controller, requireSession gin.HandlerFunc) {
	checkout := server.Group("/checkout", requireSession)
	{
		checkout.POST("", c.StartCheckout)
		checkout.PUT("/shipping", c.SetShippingAddress)
		checkout.PUT("/payment", c.SetPaymentMethod)
		checkout.POST("/submit", c.SubmitOrder)
	}

	orders := server.Group("/orders", requireSession)
	{
		orders.GET("", c.GetOrders)
		orders.GET("/:id", c.GetOrder)
		orders.PATCH("/:id/cancel", c.CancelOrder)
		orders.PATCH("/:id/status", c.UpdateOrderStatus)
	}
}
