package challenges

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to challenges
// r: the RouterGroup to which the routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	challenges := r.Group("/challenges")
	challenges.Use(middleware.AuthMiddleware())
	{
		// Challenge management routes
		challenges.GET("/", GetAllChallenges)
		challenges.GET("/:id", GetChallenge)
		challenges.POST("/", CreateChallenge)
		challenges.PUT("/:id", UpdateChallenge)
		challenges.DELETE("/:id", DeleteChallenge)

		// Participation routes
		challenges.POST("/:id/entries", SubmitEntry)
		challenges.GET("/:id/participations", GetChallengeEntries)

		// Selection and distribution routes
		challenges.POST("/:id/selection/preview", PreviewSelection)
		challenges.POST("/:id/selection/commit", CommitSelection)
		challenges.POST("/:id/approve", ApproveChallenge)
		challenges.GET("/:id/winners", GetChallengeWinners)
		challenges.GET("/:id/winners/export", ExportChallengeWinnersExcel)

		// Statistics routes
		challenges.GET("/:id/statistics", GetChallengeStatistics)
	}

	// WebSocket endpoint handles its own authentication handshake
	r.GET("/challenges/:id/live", ChallengeWebSocket)
}
