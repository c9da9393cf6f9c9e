package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/Kariqs/amexan-storefront/middlewares"
	"github.com/Kariqs/amexan-storefront/stores"
	"github.com/gin-gonic/gin"
)

// Register mounts every storefront route on server.
func Register(server *gin.Engine, sf *stores.Storefront) {
	c := controllers.New(sf)
	requireSession := middlewares.RequireSession(sf.User)

	DefaultRoutes(server, c)
	AuthRoutes(server, c, requireSession)
	ProductRoutes(server, c)
	CartRoutes(server, c)
	OrderRoutes(server, c, requireSession)
	UserRoutes(server, c)
}
