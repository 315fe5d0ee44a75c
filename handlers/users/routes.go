package users

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to users
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/", GetAllUsers)
		users.GET("/me", GetProfile)
		users.GET("/me/wins", GetMyWins)
	}
}
