package models

import "time"

// Challenge lifecycle states. Transitions are one-way: open -> selected -> approved.
const (
	ChallengeStatusOpen     = "open"
	ChallengeStatusSelected = "selected"
	ChallengeStatusApproved = "approved"
)

// Challenge types
const (
	ChallengeTypeChoice          = "choice"
	ChallengeTypeOpen            = "open"
	ChallengeTypeYoutubeViews    = "youtube_views"
	ChallengeTypeYoutubeLikes    = "youtube_likes"
	ChallengeTypeYoutubeComments = "youtube_comments"
)

// ChoiceOption is one selectable answer of a choice challenge
type ChoiceOption struct {
	ID       string `json:"id"`
	ArtistID string `json:"artist_id,omitempty"`
	Label    string `json:"label,omitempty"`
}

// PrizeTier is one rank of the prize table. Count is the number of winner
// slots awarded at this rank; ranks are contiguous starting at 1.
type PrizeTier struct {
	Rank               int     `json:"rank"`
	AmountWithBonus    float64 `json:"amount_with_bonus"`
	AmountWithoutBonus float64 `json:"amount_without_bonus"`
	Count              int     `json:"count"`
}

// Challenge represents a time-boxed prediction question with a prize pool
type Challenge struct {
	ID             string         `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Question       string         `gorm:"type:varchar(500);not null" json:"question"`
	ChallengeType  string         `gorm:"type:varchar(30);not null;column:challenge_type" json:"challenge_type"`
	Options        []ChoiceOption `gorm:"type:jsonb;serializer:json" json:"options"`
	VideoID        string         `gorm:"type:varchar(50);column:video_id" json:"video_id"`
	MetricDeadline *time.Time     `gorm:"column:metric_deadline" json:"metric_deadline"`
	CorrectAnswer  *string        `gorm:"type:varchar(255);column:correct_answer" json:"correct_answer"`
	PrizeTiers     []PrizeTier    `gorm:"type:jsonb;serializer:json;column:prize_tiers" json:"prize_tiers"`
	EntryStart     time.Time      `gorm:"not null;column:entry_start" json:"entry_start"`
	EntryEnd       time.Time      `gorm:"not null;column:entry_end" json:"entry_end"`
	Status         string         `gorm:"type:varchar(20);not null;default:'open'" json:"status"`

	// Selection record, immutable once written by the commit run
	BlockNumber  *int64     `gorm:"column:block_number" json:"block_number"`
	BlockHash    *string    `gorm:"type:varchar(100);column:block_hash" json:"block_hash"`
	Seed         *string    `gorm:"type:varchar(255)" json:"seed"`
	TotalEntries *int       `gorm:"column:total_entries" json:"total_entries"`
	SelectedAt   *time.Time `gorm:"column:selected_at" json:"selected_at"`

	// Claim window, set by approval
	ClaimStartTime *time.Time `gorm:"column:claim_start_time" json:"claim_start_time"`
	ClaimEndTime   *time.Time `gorm:"column:claim_end_time" json:"claim_end_time"`
	ApprovedAt     *time.Time `gorm:"column:approved_at" json:"approved_at"`

	CreatedAt      time.Time        `json:"created_at"`
	Participations []*Participation `gorm:"foreignKey:ChallengeID" json:"participations,omitempty"`
}

// IsNumeric reports whether answers compete on proximity to a numeric target
// instead of exact string match.
func (c *Challenge) IsNumeric() bool {
	switch c.ChallengeType {
	case ChallengeTypeYoutubeViews, ChallengeTypeYoutubeLikes, ChallengeTypeYoutubeComments:
		return true
	}
	return false
}

// TotalWinnerSlots returns the sum of Count across all prize tiers
func (c *Challenge) TotalWinnerSlots() int {
	total := 0
	for _, tier := range c.PrizeTiers {
		total += tier.Count
	}
	return total
}
