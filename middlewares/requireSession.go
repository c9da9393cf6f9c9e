package middlewares

import (
	"net/http"

	"github.com/Kariqs/amexan-storefront/models"
	"github.com/gin-gonic/gin"
)

type SessionSource interface {
	User() (models.User, bool)
	IsAuthenticated() bool
}

// RequireSession rejects requests unless a user is signed in, and exposes
// that user to handlers under the "user" key.
func RequireSession(sessions SessionSource) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !sessions.IsAuthenticated() {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Login required"})
			return
		}
		user, ok := sessions.User()
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in session"})
			return
		}
		ctx.Set("user", user)
		ctx.Next()
	}
}
