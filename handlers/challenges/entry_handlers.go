package challenges

import (
	"net/http"

	"api/middleware"
	"api/realtime"
	"api/services"

	"github.com/gin-gonic/gin"
)

// SubmitEntry records a participation for the authenticated user
// @Summary Submit an entry
// @Description Record one entry attempt; up to 3 entries per user within the entry window
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Param request body SubmitEntryRequest true "Entry"
// @Success 201 {object} models.Participation
// @Failure 400,401,404,409 {object} map[string]string
// @Router /challenges/{id}/entries [post]
// @Security Bearer
func SubmitEntry(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	challenge, err := services.GetChallenge(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	entry, err := services.AppendEntry(challenge, user.ID, req.Answer, req.HasBonus)
	if err != nil {
		respondWithError(c, http.StatusConflict, err.Error())
		return
	}

	realtime.BroadcastChallengeUpdate(realtime.ChallengeUpdate{
		ChallengeID: challenge.ID,
		UpdateType:  realtime.UpdateEntry,
		Payload:     entry,
	})
	c.JSON(http.StatusCreated, entry)
}

// GetChallengeEntries retrieves all participations for a challenge
// @Summary Get challenge participations
// @Description Admins see every entry; fans only their own
// @Tags Challenges
// @Accept json
// @Produce json
// @Param id path string true "Challenge ID"
// @Success 200 {array} models.Participation
// @Failure 401,404 {object} map[string]string
// @Router /challenges/{id}/participations [get]
// @Security Bearer
func GetChallengeEntries(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	challengeID := c.Param("id")
	if !services.ChallengeExists(challengeID) {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	if user.IsAdmin {
		entries, err := services.ListEntries(challengeID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEntries)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := services.ListUserEntries(challengeID, user.ID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedFetchEntries)
		return
	}
	c.JSON(http.StatusOK, entries)
}
