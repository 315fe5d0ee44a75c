package challenges

import (
	"fmt"
	"net/http"

	"api/services"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportChallengeWinnersExcel exports the committed winner list as an Excel file
// @Summary Export challenge winners
// @Description Download the winner list with ranks, answers and awarded amounts as an .xlsx file
// @Tags Selection
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Challenge ID"
// @Success 200 {file} binary
// @Failure 401,403,404,500 {object} map[string]string
// @Router /challenges/{id}/winners/export [get]
// @Security Bearer
func ExportChallengeWinnersExcel(c *gin.Context) {
	if _, ok := getAdminFromRequest(c); !ok {
		return
	}

	challengeID := c.Param("id")
	challenge, err := services.GetChallenge(challengeID)
	if err != nil {
		respondWithError(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	winners, err := services.ListWinners(challengeID)
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExportWinners)
		return
	}

	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := "Winners"
	xlsx.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "User", "Email", "Answer", "Bonus Holder", "Prize Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, header)
	}

	for row, winner := range winners {
		nickname, email := winner.UserID, ""
		if winner.User != nil {
			nickname = winner.User.Nickname
			email = winner.User.Email
		}
		rank := 0
		if winner.WinRank != nil {
			rank = *winner.WinRank
		}
		amount := 0.0
		if winner.PrizeAmount != nil {
			amount = *winner.PrizeAmount
		}

		values := []interface{}{rank, nickname, email, winner.Answer, winner.HasBonus, amount}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			xlsx.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("challenge-%s-winners.xlsx", challenge.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := xlsx.Write(c.Writer); err != nil {
		respondWithError(c, http.StatusInternalServerError, ErrFailedExportWinners)
		return
	}
}
