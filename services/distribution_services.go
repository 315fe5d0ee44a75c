package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"api/config"
	"api/database"
	"api/metrics"
	"api/models"
	"api/realtime"

	"github.com/google/uuid"
)

var (
	// ErrChallengeNotSelected is returned when approval is attempted before a selection commit
	ErrChallengeNotSelected = errors.New("challenge winners have not been selected")
	// ErrInsufficientFunds is returned when the treasury cannot cover the full prize sum
	ErrInsufficientFunds = errors.New("insufficient treasury balance for prize distribution")
)

// FailedPayout describes one recipient the treasury could not pay. Failed
// payouts are reported for manual retry; they never roll back payouts that
// already succeeded.
type FailedPayout struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	Error  string  `json:"error"`
}

// DistributionPlan is the outcome of one approval run
type DistributionPlan struct {
	ChallengeID string          `json:"challenge_id"`
	TotalAmount float64         `json:"total_amount"`
	Paid        []PayoutRequest `json:"paid"`
	Failed      []FailedPayout  `json:"failed"`
	ClaimStart  time.Time       `json:"claim_start"`
	ClaimEnd    *time.Time      `json:"claim_end,omitempty"`
}

// BuildPayoutRequests turns winning participation rows into payout
// instructions. Verified users with a wallet get an on-chain push;
// everyone else gets a claimable ledger credit.
func BuildPayoutRequests(challengeID string, winners []models.Participation) ([]PayoutRequest, float64) {
	requests := make([]PayoutRequest, 0, len(winners))
	total := 0.0
	for _, winner := range winners {
		if winner.PrizeAmount == nil || *winner.PrizeAmount <= 0 {
			continue
		}
		payout := PayoutRequest{
			Reference:   uuid.NewString(),
			ChallengeID: challengeID,
			UserID:      winner.UserID,
			Amount:      *winner.PrizeAmount,
			Destination: models.PayoutDestinationCredit,
		}
		if winner.User != nil && winner.User.HasWallet() {
			payout.Destination = models.PayoutDestinationWallet
			payout.Wallet = *winner.User.WalletAddress
		}
		requests = append(requests, payout)
		total += payout.Amount
	}
	return requests, total
}

// ApproveChallenge distributes prizes for a selected challenge and opens the
// claim window. The funding balance is verified up front; the transition
// selected -> approved is a single conditional update claimed before the
// fan-out, so a racing second approval cannot pay anyone twice. Per-recipient
// payout failures are collected into the plan, not raised.
func ApproveChallenge(challengeID string, claimStart time.Time, claimEnd *time.Time) (*DistributionPlan, error) {
	challenge, err := GetChallenge(challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Status != models.ChallengeStatusSelected {
		return nil, ErrChallengeNotSelected
	}

	winners, err := ListWinners(challengeID)
	if err != nil {
		return nil, err
	}

	payouts, total := BuildPayoutRequests(challengeID, winners)

	treasury := NewTreasuryClient()
	balance, err := treasury.GetBalance(context.Background())
	if err != nil {
		return nil, err
	}
	if balance < total {
		return nil, fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientFunds, total, balance)
	}

	now := time.Now()
	guard := database.DB.Model(&models.Challenge{}).
		Where("id = ? AND status = ?", challengeID, models.ChallengeStatusSelected).
		Updates(map[string]interface{}{
			"status":           models.ChallengeStatusApproved,
			"claim_start_time": claimStart,
			"claim_end_time":   claimEnd,
			"approved_at":      now,
		})
	if guard.Error != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", guard.Error)
	}
	if guard.RowsAffected == 0 {
		return nil, ErrChallengeNotSelected
	}

	plan := &DistributionPlan{
		ChallengeID: challengeID,
		TotalAmount: total,
		ClaimStart:  claimStart,
		ClaimEnd:    claimEnd,
	}

	notifier := NewNotificationService()
	usersByID := make(map[string]*models.User, len(winners))
	for i := range winners {
		usersByID[winners[i].UserID] = winners[i].User
	}

	for _, payout := range payouts {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultDistributionConfig.PayoutTimeout)
		err := treasury.SendPayout(ctx, payout)
		cancel()

		record := models.PayoutRecord{
			Reference:   payout.Reference,
			ChallengeID: challengeID,
			UserID:      payout.UserID,
			Amount:      payout.Amount,
			Destination: payout.Destination,
			Status:      models.PayoutStatusSent,
		}
		if err != nil {
			record.Status = models.PayoutStatusFailed
			record.Error = err.Error()
			plan.Failed = append(plan.Failed, FailedPayout{UserID: payout.UserID, Amount: payout.Amount, Error: err.Error()})
			log.Printf("Challenge %s: payout to user %s failed: %v", challengeID, payout.UserID, err)
		} else {
			plan.Paid = append(plan.Paid, payout)
			metrics.DistributedAmount.Add(payout.Amount)
		}
		metrics.PayoutInstructions.WithLabelValues(payout.Destination, record.Status).Inc()

		if dbErr := database.DB.Create(&record).Error; dbErr != nil {
			log.Printf("Challenge %s: failed to record payout %s: %v", challengeID, payout.Reference, dbErr)
		}

		if err == nil {
			if user := usersByID[payout.UserID]; user != nil {
				claimUrl := fmt.Sprintf("%s/challenges/%s/claim", config.ClientUrl, challengeID)
				if mailErr := notifier.SendWinnerNotification(user.Email, user.Nickname, challenge.Question, payout.Amount, claimUrl); mailErr != nil {
					log.Printf("Challenge %s: failed to notify winner %s: %v", challengeID, payout.UserID, mailErr)
				}
			}
		}
	}

	log.Printf("Challenge %s approved: %d payouts sent, %d failed, %.2f total",
		challengeID, len(plan.Paid), len(plan.Failed), plan.TotalAmount)

	realtime.BroadcastChallengeUpdate(realtime.ChallengeUpdate{
		ChallengeID: challengeID,
		UpdateType:  realtime.UpdateApproved,
		Payload:     plan,
	})
	return plan, nil
}
