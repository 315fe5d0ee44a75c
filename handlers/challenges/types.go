package challenges

import (
	"net/http"
	"time"

	"api/middleware"
	"api/models"

	"github.com/gin-gonic/gin"
)

// Constants for error messages
const (
	ErrChallengeNotFound       = "Challenge not found"
	ErrNoPermissionManage      = "User does not have permission to manage challenges"
	ErrFailedFetchChallenges   = "Failed to fetch challenges"
	ErrFailedFetchEntries      = "Failed to fetch participations"
	ErrFailedCreateChallenge   = "Failed to create challenge"
	ErrFailedUpdateChallenge   = "Failed to update challenge"
	ErrFailedDeleteChallenge   = "Failed to delete challenge"
	ErrInvalidRequest          = "Invalid request data"
	ErrChallengeNotOpen        = "Challenge is no longer accepting entries"
	ErrEntryWindowStillOpen    = "Entry window has not closed yet"
	ErrAlreadySelected         = "Winners were already selected for this challenge"
	ErrNotSelected             = "Winners have not been selected for this challenge"
	ErrNoEligibleEntries       = "No eligible entries found"
	ErrInvalidTarget           = "Challenge has no usable target value"
	ErrInsufficientFunds       = "Treasury balance cannot cover the prize distribution"
	ErrFailedExportWinners     = "Failed to export winner list"
	ErrCannotUpdateAfterSelect = "Challenge can no longer be modified"
)

// CreateChallengeRequest model for creating a challenge
type CreateChallengeRequest struct {
	Question       string                `json:"question" binding:"required"`
	ChallengeType  string                `json:"challenge_type" binding:"required"`
	Options        []models.ChoiceOption `json:"options"`
	VideoID        string                `json:"video_id"`
	MetricDeadline *time.Time            `json:"metric_deadline"`
	CorrectAnswer  *string               `json:"correct_answer"`
	PrizeTiers     []models.PrizeTier    `json:"prize_tiers" binding:"required"`
	EntryStart     time.Time             `json:"entry_start" binding:"required"`
	EntryEnd       time.Time             `json:"entry_end" binding:"required"`
}

// UpdateChallengeRequest model for updating a challenge before selection
type UpdateChallengeRequest struct {
	Question      *string            `json:"question"`
	CorrectAnswer *string            `json:"correct_answer"`
	PrizeTiers    []models.PrizeTier `json:"prize_tiers"`
	EntryEnd      *time.Time         `json:"entry_end"`
}

// SubmitEntryRequest model for recording a participation
type SubmitEntryRequest struct {
	Answer   string `json:"answer" binding:"required"`
	HasBonus bool   `json:"has_bonus"`
}

// PreviewSelectionRequest model for rehearsing a selection run
type PreviewSelectionRequest struct {
	TargetOverride *float64 `json:"target_override"`
}

// ApproveChallengeRequest model for opening the claim window
type ApproveChallengeRequest struct {
	ClaimStart time.Time  `json:"claim_start" binding:"required"`
	ClaimEnd   *time.Time `json:"claim_end"`
}

// ChallengeStatsResponse model for challenge statistics
type ChallengeStatsResponse struct {
	ChallengeID      string  `json:"challenge_id"`
	Question         string  `json:"question"`
	Status           string  `json:"status"`
	TotalEntries     int     `json:"total_entries"`
	DistinctUsers    int     `json:"distinct_users"`
	BonusHolders     int     `json:"bonus_holders"`
	TotalWinners     int     `json:"total_winners"`
	TotalAwarded     float64 `json:"total_awarded"`
	MaxDistributable float64 `json:"max_distributable"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// getAdminFromRequest loads the authenticated user and rejects non-admins
func getAdminFromRequest(c *gin.Context) (models.User, bool) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return models.User{}, false
	}
	if !user.IsAdmin {
		respondWithError(c, http.StatusForbidden, ErrNoPermissionManage)
		return models.User{}, false
	}
	return user, true
}
