package routes

import (
	"github.com/Kariqs/amexan-storefront/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, c *controllers.Controller, requireSession gin.HandlerFunc) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", c.Signup)
		auth.POST("/login", c.Login)
		auth.POST("/logout", c.Logout)
		auth.GET("/check-email", c.CheckEmail)
		auth.GET("/me", c.GetCurrentUser)
		auth.PUT("/profile", requireSession, c.UpdateProfile)
		auth.POST("/change-password", requireSession, c.ChangePassword)
		auth.POST("/avatar", requireSession, c.UploadAvatar)
	}
}
