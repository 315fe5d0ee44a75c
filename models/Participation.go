package models

import "time"

// Participation represents one entry attempt of a user in a challenge.
// HasBonus is snapshotted at entry time and never updated afterwards.
// IsWinner and PrizeAmount stay null until the selection commit run and
// are written exactly once.
type Participation struct {
	ID          string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	ChallengeID string     `gorm:"type:uuid;not null;index;column:challenge_id" json:"challenge_id"`
	UserID      string     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Answer      string     `gorm:"type:varchar(255);not null" json:"answer"`
	HasBonus    bool       `gorm:"not null;default:false;column:has_bonus" json:"has_bonus"`
	IsWinner    *bool      `gorm:"column:is_winner" json:"is_winner"`
	PrizeAmount *float64   `gorm:"type:numeric(15,2);column:prize_amount" json:"prize_amount"`
	WinRank     *int       `gorm:"column:win_rank" json:"win_rank"`
	CreatedAt   time.Time  `json:"created_at"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID" json:"challenge,omitempty"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
