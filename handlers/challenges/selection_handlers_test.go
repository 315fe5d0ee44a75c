package challenges

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"api/models"
	"api/selection"
	"api/services"

	"github.com/gin-gonic/gin"
)

func TestWinnersCacheable(t *testing.T) {
	if winnersCacheable(models.ChallengeStatusOpen) {
		t.Error("winner list of an open challenge must never be cached")
	}
	if !winnersCacheable(models.ChallengeStatusSelected) {
		t.Error("winner list of a selected challenge should be cached")
	}
	if !winnersCacheable(models.ChallengeStatusApproved) {
		t.Error("winner list of an approved challenge should be cached")
	}
}

func TestRespondWithSelectionError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err     error
		status  int
		message string
	}{
		{services.ErrAlreadySelected, http.StatusConflict, ErrAlreadySelected},
		{services.ErrEntryWindowOpen, http.StatusConflict, ErrEntryWindowStillOpen},
		{selection.ErrNoEligibleEntries, http.StatusUnprocessableEntity, ErrNoEligibleEntries},
		{selection.ErrInvalidTarget, http.StatusBadRequest, ErrInvalidTarget},
		{selection.ErrNoCorrectAnswer, http.StatusBadRequest, ErrInvalidTarget},
		{selection.ErrOverrideNotAllowed, http.StatusBadRequest, selection.ErrOverrideNotAllowed.Error()},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondWithSelectionError(c, tc.err)
		if w.Code != tc.status {
			t.Errorf("%v: expected status %d, got %d", tc.err, tc.status, w.Code)
		}
		if !strings.Contains(w.Body.String(), tc.message) {
			t.Errorf("%v: expected message %q, got body %s", tc.err, tc.message, w.Body.String())
		}
	}
}
