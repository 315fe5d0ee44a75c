package users

import (
	"net/http"

	"api/database"
	"api/middleware"
	"api/models"

	"github.com/gin-gonic/gin"
)

const (
	ErrNoPermissionView = "User does not have permission to view users"
	ErrFailedFetchUsers = "Failed to fetch users"
	ErrFailedFetchWins  = "Failed to fetch winning entries"
)

// GetProfile returns the authenticated user's profile
// @Summary Get own profile
// @Description Get the profile of the authenticated user
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
// @Security Bearer
func GetProfile(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMyWins returns the authenticated user's winning participations
// @Summary Get own winning entries
// @Description Get every winning participation of the authenticated user across challenges
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {array} models.Participation
// @Failure 401 {object} map[string]string
// @Router /users/me/wins [get]
// @Security Bearer
func GetMyWins(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var wins []models.Participation
	if err := database.DB.Where("user_id = ? AND is_winner = true", user.ID).
		Preload("Challenge").Order("created_at desc").Find(&wins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFailedFetchWins})
		return
	}
	c.JSON(http.StatusOK, wins)
}

// GetAllUsers retrieves all users (admin only)
// @Summary Get all users
// @Description Get all registered users
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {array} models.User
// @Failure 401,403 {object} map[string]string
// @Router /users [get]
// @Security Bearer
func GetAllUsers(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrNoPermissionView})
		return
	}

	var users []models.User
	if err := database.DB.Order("created_at asc").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrFailedFetchUsers})
		return
	}
	c.JSON(http.StatusOK, users)
}
