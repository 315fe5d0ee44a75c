package challenges

import (
	"errors"
	"log"
	"net/http"
	"time"

	"api/database"
	"api/models"
	"api/selection"
	"api/services"
	"api/utils"

	"github.com/gin-gonic/gin"
)

const winnersCacheTTL = 5 * time.Minute

// PreviewSelection rehearses the winner selection without writing anything
// @Summary Preview winner selection
// @Description Run the selection engine non-destructively; repeatable, with an optional target override for numeric challenges
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body PreviewSelectionRequest false "Preview options"
// @Success 200 {object} selection.Result
// @Failure 400,401,403,404,409,422 {object} map[string]string
// @Router /challenges/{id}/selection/preview [post]
// @Security Bearer
func PreviewSelection(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	var req PreviewSelectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
			return
		}
	}

	result, err := services.PreviewSelection(c.Param("id"), req.TargetOverride)
	if err != nil {
		respondWithSelectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CommitSelection runs the single irrevocable selection execution
// @Summary Commit winner selection
// @Description Persist winner flags, prize amounts and the selection record; rejected if winners were already selected
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} selection.Result
// @Failure 400,401,403,404,409,422 {object} map[string]string
// @Router /challenges/{id}/selection/commit [post]
// @Security Bearer
func CommitSelection(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	challengeID := c.Param("id")
	result, err := services.CommitSelection(challengeID)
	if err != nil {
		respondWithSelectionError(c, err)
		return
	}

	// Invalidate any winner list cached for this challenge
	if err := database.REDIS.Del(c.Request.Context(), winnersCacheKey(challengeID)).Err(); err != nil {
		log.Printf("Failed to invalidate winners cache: %v", err)
	}

	c.JSON(http.StatusOK, result)
}

// ApproveChallenge distributes prizes and opens the claim window
// @Summary Approve a selected challenge
// @Description Verify funding, emit one payout instruction per winner and mark the challenge approved; per-recipient failures are reported, not fatal
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body ApproveChallengeRequest true "Claim window"
// @Success 200 {object} services.DistributionPlan
// @Failure 400,401,402,403,404,409 {object} map[string]string
// @Router /challenges/{id}/approve [post]
// @Security Bearer
func ApproveChallenge(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	var req ApproveChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if req.ClaimEnd != nil && !req.ClaimEnd.After(req.ClaimStart) {
		respondWithError(c, http.StatusBadRequest, "Claim window must end after it starts")
		return
	}

	plan, err := services.ApproveChallenge(c.Param("id"), req.ClaimStart, req.ClaimEnd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChallengeNotSelected):
			respondWithError(c, http.StatusConflict, ErrNotSelected)
		case errors.Is(err, services.ErrInsufficientFunds):
			respondWithError(c, http.StatusPaymentRequired, ErrInsufficientFunds)
		default:
			respondWithError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}

// GetChallengeWinners retrieves the committed winner list
// @Summary Get challenge winners
// @Description Get the winning participations ordered by win rank
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {array} models.Participation
// @Failure 401,404 {object} map[string]string
// @Router /challenges/{id}/winners [get]
// @Security Bearer
func GetChallengeWinners(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	challengeID := c.Param("id")
	challenge, err := services.GetChallenge(challengeID)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	// The winner list only becomes immutable once the commit run wrote it;
	// while the challenge is still open a cached copy could mask a commit
	// happening within the TTL, so open challenges bypass the cache.
	ctx := c.Request.Context()
	cacheKey := winnersCacheKey(challengeID)
	var winners []models.Participation
	if winnersCacheable(challenge.Status) {
		cachedData, cacheErr := database.REDIS.Get(ctx, cacheKey).Result()
		if cacheErr == nil && cachedData != "" {
			if jsonErr := utils.UnmarshalJSON([]byte(cachedData), &winners); jsonErr == nil {
				c.JSON(http.StatusOK, winners)
				return
			} else {
				log.Printf("Failed to unmarshal cached winners: %v", jsonErr)
			}
		}
	}

	winners, err = services.ListWinners(challengeID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEntries)
		return
	}

	if winnersCacheable(challenge.Status) {
		if winnersJSON, err := utils.MarshalJSON(winners); err == nil {
			if err := database.REDIS.Set(ctx, cacheKey, string(winnersJSON), winnersCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache challenge winners: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, winners)
}

// winnersCacheKey returns the cache key holding a challenge's winner list
func winnersCacheKey(challengeID string) string {
	return "challenge_winners:" + challengeID
}

// winnersCacheable reports whether a challenge's winner list may be served
// from or written to the cache. Before the selection commit the list is
// still mutable, so only selected and approved challenges qualify.
func winnersCacheable(status string) bool {
	return status != models.ChallengeStatusOpen
}

// respondWithSelectionError maps selection engine errors to HTTP statuses
func respondWithSelectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadySelected):
		respondWithError(c, http.StatusConflict, ErrAlreadySelected)
	case errors.Is(err, services.ErrEntryWindowOpen):
		respondWithError(c, http.StatusConflict, ErrEntryWindowStillOpen)
	case errors.Is(err, selection.ErrNoEligibleEntries):
		respondWithError(c, http.StatusUnprocessableEntity, ErrNoEligibleEntries)
	case errors.Is(err, selection.ErrInvalidTarget),
		errors.Is(err, selection.ErrNoCorrectAnswer):
		respondWithError(c, http.StatusBadRequest, ErrInvalidTarget)
	case errors.Is(err, selection.ErrNoPrizeTiers),
		errors.Is(err, selection.ErrOverrideNotAllowed):
		respondWithError(c, http.StatusBadRequest, err.Error())
	default:
		respondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
