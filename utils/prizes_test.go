package utils

import (
	"testing"

	"api/models"
)

func TestValidatePrizeTiers(t *testing.T) {
	valid := []models.PrizeTier{
		{Rank: 1, AmountWithBonus: 50, AmountWithoutBonus: 25, Count: 1},
		{Rank: 2, AmountWithBonus: 30, AmountWithoutBonus: 15, Count: 2},
	}
	if err := ValidatePrizeTiers(valid); err != nil {
		t.Errorf("valid tiers rejected: %v", err)
	}

	if err := ValidatePrizeTiers(nil); err == nil {
		t.Errorf("empty tier list accepted")
	}
	if err := ValidatePrizeTiers([]models.PrizeTier{{Rank: 2, Count: 1}}); err == nil {
		t.Errorf("non-contiguous ranks accepted")
	}
	if err := ValidatePrizeTiers([]models.PrizeTier{{Rank: 1, Count: 0}}); err == nil {
		t.Errorf("zero count accepted")
	}
	if err := ValidatePrizeTiers([]models.PrizeTier{{Rank: 1, Count: 1, AmountWithBonus: -5}}); err == nil {
		t.Errorf("negative amount accepted")
	}
}

func TestMaxDistributable(t *testing.T) {
	tiers := []models.PrizeTier{
		{Rank: 1, AmountWithBonus: 50, AmountWithoutBonus: 25, Count: 1},
		{Rank: 2, AmountWithBonus: 30, AmountWithoutBonus: 15, Count: 2},
	}
	if got := MaxDistributable(tiers); got != 110 {
		t.Errorf("expected 110, got %v", got)
	}
}
