package challenges

import (
	"net/http"

	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"

	"github.com/gin-gonic/gin"
)

// GetAllChallenges retrieves all challenges
// @Summary Get all challenges
// @Description Get all challenges ordered by entry window start
// @Tags Challenges
// @Accept json
// @Produce json
// @Success 200 {array} models.Challenge
// @Failure 401 {object} map[string]string
// @Router /challenges [get]
// @Security Bearer
func GetAllChallenges(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	var challenges []models.Challenge
	if err := database.DB.Order("entry_start desc").Find(&challenges).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchChallenges)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetChallenge retrieves a single challenge
// @Summary Get a challenge
// @Description Get the challenge with the specified ID
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 401,404 {object} map[string]string
// @Router /challenges/{id} [get]
// @Security Bearer
func GetChallenge(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// CreateChallenge creates a new challenge
// @Summary Create a challenge
// @Description Create a new prediction challenge with its prize table
// @Tags Challenges
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge to create"
// @Success 201 {object} models.Challenge
// @Failure 400,401,403 {object} map[string]string
// @Router /challenges [post]
// @Security Bearer
func CreateChallenge(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	switch req.ChallengeType {
	case models.ChallengeTypeChoice, models.ChallengeTypeOpen,
		models.ChallengeTypeYoutubeViews, models.ChallengeTypeYoutubeLikes, models.ChallengeTypeYoutubeComments:
	default:
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := utils.ValidatePrizeTiers(req.PrizeTiers); err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !req.EntryEnd.After(req.EntryStart) {
		respondWithError(c, http.StatusBadRequest, "Entry window must end after it starts")
		return
	}

	challenge := models.Challenge{
		Question:       req.Question,
		ChallengeType:  req.ChallengeType,
		Options:        req.Options,
		VideoID:        req.VideoID,
		MetricDeadline: req.MetricDeadline,
		CorrectAnswer:  req.CorrectAnswer,
		PrizeTiers:     req.PrizeTiers,
		EntryStart:     req.EntryStart,
		EntryEnd:       req.EntryEnd,
		Status:         models.ChallengeStatusOpen,
	}
	if err := database.DB.Create(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedCreateChallenge)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// UpdateChallenge updates a challenge that has not been selected yet
// @Summary Update a challenge
// @Description Update question, correct answer, prize table or entry end of an open challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body UpdateChallengeRequest true "Fields to update"
// @Success 200 {object} models.Challenge
// @Failure 400,401,403,404,409 {object} map[string]string
// @Router /challenges/{id} [put]
// @Security Bearer
func UpdateChallenge(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}
	if challenge.Status != models.ChallengeStatusOpen {
		respondWithError(c, http.StatusConflict, ErrCannotUpdateAfterSelect)
		return
	}

	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if req.Question != nil {
		challenge.Question = *req.Question
	}
	if req.CorrectAnswer != nil {
		challenge.CorrectAnswer = req.CorrectAnswer
	}
	if req.PrizeTiers != nil {
		if err := utils.ValidatePrizeTiers(req.PrizeTiers); err != nil {
			respondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		challenge.PrizeTiers = req.PrizeTiers
	}
	if req.EntryEnd != nil {
		challenge.EntryEnd = *req.EntryEnd
	}

	if err := database.DB.Save(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedUpdateChallenge)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// DeleteChallenge deletes an open challenge and its participations
// @Summary Delete a challenge
// @Description Delete a challenge that has not been selected yet
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 204 "No Content"
// @Failure 401,403,404,409 {object} map[string]string
// @Router /challenges/{id} [delete]
// @Security Bearer
func DeleteChallenge(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", c.Param("id")).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}
	if challenge.Status != models.ChallengeStatusOpen {
		respondWithError(c, http.StatusConflict, ErrCannotUpdateAfterSelect)
		return
	}

	database.DB.Where("challenge_id = ?", challenge.ID).Delete(&models.Participation{})
	if err := database.DB.Delete(&challenge).Error; err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedDeleteChallenge)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetChallengeStatistics retrieves statistics for a challenge
// @Summary Get challenge statistics
// @Description Get participation and winner statistics for the specified challenge
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {object} ChallengeStatsResponse
// @Failure 401,404 {object} map[string]string
// @Router /challenges/{id}/statistics [get]
// @Security Bearer
func GetChallengeStatistics(c *gin.Context) {
	if _, err := middleware.GetUserFromRequest(c); err != nil {
		return
	}

	challengeID := c.Param("id")
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", challengeID).Error; err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var totalEntries, distinctUsers, bonusHolders, totalWinners int64
	var totalAwarded float64

	database.DB.Model(&models.Participation{}).
		Where("challenge_id = ?", challengeID).
		Count(&totalEntries)

	database.DB.Model(&models.Participation{}).
		Select("COUNT(DISTINCT user_id)").
		Where("challenge_id = ?", challengeID).
		Count(&distinctUsers)

	database.DB.Model(&models.Participation{}).
		Select("COUNT(DISTINCT user_id)").
		Where("challenge_id = ? AND has_bonus = true", challengeID).
		Count(&bonusHolders)

	database.DB.Model(&models.Participation{}).
		Where("challenge_id = ? AND is_winner = true", challengeID).
		Count(&totalWinners)

	database.DB.Model(&models.Participation{}).
		Select("COALESCE(SUM(prize_amount), 0)").
		Where("challenge_id = ? AND is_winner = true", challengeID).
		Scan(&totalAwarded)

	stats := ChallengeStatsResponse{
		ChallengeID:      challengeID,
		Question:         challenge.Question,
		Status:           challenge.Status,
		TotalEntries:     int(totalEntries),
		DistinctUsers:    int(distinctUsers),
		BonusHolders:     int(bonusHolders),
		TotalWinners:     int(totalWinners),
		TotalAwarded:     totalAwarded,
		MaxDistributable: utils.MaxDistributable(challenge.PrizeTiers),
	}
	c.JSON(http.StatusOK, stats)
}
