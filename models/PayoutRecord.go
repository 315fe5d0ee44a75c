package models

import "time"

// Payout destinations
const (
	PayoutDestinationWallet = "wallet" // on-chain push to a verified wallet
	PayoutDestinationCredit = "credit" // claimable internal ledger credit
)

// Payout statuses
const (
	PayoutStatusSent   = "sent"
	PayoutStatusFailed = "failed"
)

// PayoutRecord is the audit trail of one distribution instruction emitted
// during challenge approval. Failed records are kept for manual retry.
type PayoutRecord struct {
	ID          string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Reference   string    `gorm:"type:varchar(100);unique;not null" json:"reference"`
	ChallengeID string    `gorm:"type:uuid;not null;index;column:challenge_id" json:"challenge_id"`
	UserID      string    `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	Amount      float64   `gorm:"type:numeric(15,2);not null" json:"amount"`
	Destination string    `gorm:"type:varchar(20);not null" json:"destination"`
	Status      string    `gorm:"type:varchar(20);not null" json:"status"`
	Error       string    `gorm:"type:varchar(500)" json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
