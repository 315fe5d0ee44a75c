package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"api/config"
	"api/database"
	"api/metrics"
	"api/models"
	"api/realtime"
	"api/selection"

	"gorm.io/gorm"
)

var (
	// ErrEntryWindowOpen is returned when selection is attempted before the entry window closed
	ErrEntryWindowOpen = errors.New("entry window is still open")
	// ErrAlreadySelected is returned when a commit is attempted on a challenge that left the open state
	ErrAlreadySelected = errors.New("challenge winners were already selected")
)

func selectionPolicy() selection.Policy {
	return selection.Policy{BonusRatio: config.DefaultSelectionConfig.BonusRatio}
}

// PreviewSelection runs the winner selection engine without touching storage.
// It is safe to call repeatedly, e.g. while the operator rehearses a numeric
// challenge against hypothetical target values.
func PreviewSelection(challengeID string, targetOverride *float64) (*selection.Result, error) {
	start := time.Now()
	challenge, err := GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Status != models.ChallengeStatusOpen {
		return nil, ErrAlreadySelected
	}
	if time.Now().Before(challenge.EntryEnd) {
		return nil, ErrEntryWindowOpen
	}

	entries, err := ListEntries(challengeID)
	if err != nil {
		return nil, err
	}

	seed, err := FetchSelectionSeed(challengeID)
	if err != nil {
		return nil, err
	}

	result, err := selection.Select(&challenge, entries, seed.Seed, selection.Preview, selectionPolicy(), targetOverride)
	if err != nil {
		metrics.RecordSelectionRun("preview", "error", start)
		return nil, err
	}
	metrics.RecordSelectionRun("preview", "ok", start)
	return result, nil
}

// CommitSelection runs the winner selection engine and persists the outcome.
// The state transition open -> selected is a single conditional update, so a
// racing second commit sees zero affected rows and fails without writing.
func CommitSelection(challengeID string) (*selection.Result, error) {
	start := time.Now()
	challenge, err := GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Status != models.ChallengeStatusOpen {
		return nil, ErrAlreadySelected
	}
	if time.Now().Before(challenge.EntryEnd) {
		return nil, ErrEntryWindowOpen
	}

	entries, err := ListEntries(challengeID)
	if err != nil {
		return nil, err
	}

	seed, err := FetchSelectionSeed(challengeID)
	if err != nil {
		return nil, err
	}

	result, err := selection.Select(&challenge, entries, seed.Seed, selection.Commit, selectionPolicy(), nil)
	if err != nil {
		metrics.RecordSelectionRun("commit", "error", start)
		return nil, err
	}

	// The full winner set is computed before any write is issued; the
	// transaction either persists all of it or none of it.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		guard := tx.Model(&models.Challenge{}).
			Where("id = ? AND status = ?", challengeID, models.ChallengeStatusOpen).
			Updates(map[string]interface{}{
				"status":        models.ChallengeStatusSelected,
				"block_number":  seed.BlockNumber,
				"block_hash":    seed.BlockHash,
				"seed":          seed.Seed,
				"total_entries": result.EligibleCount,
				"selected_at":   now,
			})
		if guard.Error != nil {
			return fmt.Errorf("failed to update challenge: %w", guard.Error)
		}
		if guard.RowsAffected == 0 {
			return ErrAlreadySelected
		}

		for _, winner := range result.Winners {
			if err := tx.Model(&models.Participation{}).
				Where("id = ?", winner.ParticipationID).
				Updates(map[string]interface{}{
					"is_winner":    true,
					"prize_amount": winner.PrizeAmount,
					"win_rank":     winner.Rank,
				}).Error; err != nil {
				return fmt.Errorf("failed to mark winner %s: %w", winner.UserID, err)
			}
		}

		if len(result.LoserIDs) > 0 {
			if err := tx.Model(&models.Participation{}).
				Where("id IN ?", result.LoserIDs).
				Updates(map[string]interface{}{
					"is_winner":    false,
					"prize_amount": 0,
				}).Error; err != nil {
				return fmt.Errorf("failed to mark losing entries: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordSelectionRun("commit", "error", start)
		return nil, err
	}

	metrics.RecordSelectionRun("commit", "ok", start)
	log.Printf("Challenge %s: selected %d winners from %d eligible entries (block %d)",
		challengeID, len(result.Winners), result.EligibleCount, seed.BlockNumber)

	realtime.BroadcastChallengeUpdate(realtime.ChallengeUpdate{
		ChallengeID: challengeID,
		UpdateType:  realtime.UpdateSelected,
		Payload:     result,
	})
	return result, nil
}
