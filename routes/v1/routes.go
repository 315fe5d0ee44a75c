package v1

import (
	"net/http"

	"api/handlers/auth"
	"api/handlers/challenges"
	"api/handlers/users"

	"github.com/gin-gonic/gin"
)

// RegisterPingRoutes registers the health check endpoint
func RegisterPingRoutes(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

// RegisterAuthRoutes registers the authentication endpoints
func RegisterAuthRoutes(r *gin.RouterGroup) {
	auth.RegisterRoutes(r)
}

// RegisterUserRoutes registers the user endpoints
func RegisterUserRoutes(r *gin.RouterGroup) {
	users.RegisterRoutes(r)
}

// RegisterChallengesRoutes registers the challenge endpoints
func RegisterChallengesRoutes(r *gin.RouterGroup) {
	challenges.RegisterRoutes(r)
}
