package utils

import (
	"fmt"

	"api/models"
)

// ValidatePrizeTiers checks that tier ranks are contiguous starting at 1
// and that every tier has a positive slot count and non-negative amounts
func ValidatePrizeTiers(tiers []models.PrizeTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("at least one prize tier is required")
	}
	for i, tier := range tiers {
		if tier.Rank != i+1 {
			return fmt.Errorf("prize tier ranks must be contiguous starting at 1, got rank %d at position %d", tier.Rank, i)
		}
		if tier.Count < 1 {
			return fmt.Errorf("prize tier %d must have a count of at least 1", tier.Rank)
		}
		if tier.AmountWithBonus < 0 || tier.AmountWithoutBonus < 0 {
			return fmt.Errorf("prize tier %d has a negative amount", tier.Rank)
		}
	}
	return nil
}

// MaxDistributable returns the largest total payout the prize table can
// produce, assuming every slot is filled by a bonus holder if that pays more
func MaxDistributable(tiers []models.PrizeTier) float64 {
	total := 0.0
	for _, tier := range tiers {
		amount := tier.AmountWithoutBonus
		if tier.AmountWithBonus > amount {
			amount = tier.AmountWithBonus
		}
		total += amount * float64(tier.Count)
	}
	return total
}
