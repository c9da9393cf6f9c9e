package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, c *controllers.Controller) {
	catalog := server.Group("/catalog")
	{
		catalog.POST("/refresh", c.RefreshCatalog)
		catalog.GET("", c.GetCatalog)
		catalog.PUT("/filters", c.SetFilters)
		catalog.DELETE("/filters", c.ClearFilters)
		catalog.PUT("/sort", c.SetSortOption)
		catalog.GET("/search", c.SearchProducts)
	}
	server.GET("/products/:id", c.GetProduct)
}
