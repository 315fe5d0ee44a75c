package config

import "time"

// Selection policy configuration
type SelectionConfig struct {
	BonusRatio float64 // Target share of each prize tier reserved for bonus holders
	MaxEntries int     // Maximum participation rows per user per challenge
}

var DefaultSelectionConfig = SelectionConfig{
	BonusRatio: 0.7,
	MaxEntries: 3,
}

// Distribution fan-out configuration
type DistributionConfig struct {
	PayoutTimeout time.Duration // Per-recipient timeout, failures do not abort the batch
}

var DefaultDistributionConfig = DistributionConfig{
	PayoutTimeout: 10 * time.Second,
}
