package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"api/config"
	"api/database"
	"api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB swaps the global connection for a sqlmock-backed one so service
// logic can be exercised without a live database.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm over sqlmock: %v", err)
	}
	database.DB = gormDB
	return mock
}

func stubOracle(t *testing.T, seed SelectionSeed) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(seed)
	}))
	t.Cleanup(server.Close)
	prev := config.OracleUrl
	config.OracleUrl = server.URL
	t.Cleanup(func() { config.OracleUrl = prev })
}

const selectChallengeQuery = `SELECT \* FROM "challenges" WHERE id = .+`

func TestCommitSelectionRejectsSecondRun(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery(selectChallengeQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).
			AddRow("c-1", models.ChallengeStatusSelected))

	if _, err := CommitSelection("c-1"); !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("second commit must not touch the database beyond the status read: %v", err)
	}
}

func TestCommitSelectionGuardAgainstConcurrentCommit(t *testing.T) {
	mock := newMockDB(t)
	stubOracle(t, SelectionSeed{BlockNumber: 42, BlockHash: "0xabc", Seed: "seed-42"})

	correct := "opt-a"
	tiers := `[{"rank":1,"amount_with_bonus":50,"amount_without_bonus":25,"count":1}]`

	mock.ExpectQuery(selectChallengeQuery).
		WillReturnRows(sqlmock.NewRows([]string{"id", "challenge_type", "correct_answer", "prize_tiers", "entry_end", "status"}).
			AddRow("c-1", models.ChallengeTypeChoice, correct, tiers,
				time.Now().Add(-time.Hour), models.ChallengeStatusOpen))

	mock.ExpectQuery(`SELECT \* FROM "participations" WHERE challenge_id = .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "challenge_id", "user_id", "answer", "has_bonus"}).
			AddRow("p-1", "c-1", "u-1", correct, false))

	// A concurrent commit won the race between the status read and the
	// conditional update: the update matches no row and the transaction
	// rolls back without writing anything.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "challenges" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if _, err := CommitSelection("c-1"); !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("losing commit must roll back with no winner writes: %v", err)
	}
}
