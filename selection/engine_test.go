package selection

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"api/models"
)

var testPolicy = Policy{BonusRatio: 0.7}

func strPtr(s string) *string { return &s }

func choiceChallenge(answer string, tiers ...models.PrizeTier) *models.Challenge {
	return &models.Challenge{
		ID:            "ch-1",
		Question:      "Which member gets the first solo stage?",
		ChallengeType: models.ChallengeTypeChoice,
		CorrectAnswer: strPtr(answer),
		PrizeTiers:    tiers,
	}
}

func numericChallenge(target string, tiers ...models.PrizeTier) *models.Challenge {
	ch := choiceChallenge(target, tiers...)
	ch.ChallengeType = models.ChallengeTypeYoutubeViews
	ch.Question = "How many views will the MV have at the deadline?"
	return ch
}

func entry(id, userID, answer string, hasBonus bool, minute int) models.Participation {
	return models.Participation{
		ID:        id,
		UserID:    userID,
		Answer:    answer,
		HasBonus:  hasBonus,
		CreatedAt: time.Date(2025, 6, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestSelectDeterministic(t *testing.T) {
	ch := choiceChallenge("B", models.PrizeTier{Rank: 1, AmountWithBonus: 50, AmountWithoutBonus: 25, Count: 3})
	var parts []models.Participation
	for i := 0; i < 10; i++ {
		parts = append(parts, entry(fmt.Sprintf("p-%02d", i), fmt.Sprintf("u-%02d", i), "B", i%2 == 0, i))
	}

	first, err := Select(ch, parts, "0xabc123", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same inputs with a different row order must reproduce the result.
	reversed := make([]models.Participation, len(parts))
	for i := range parts {
		reversed[len(parts)-1-i] = parts[i]
	}
	second, err := Select(ch, reversed, "0xabc123", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed and entries produced different results:\n%+v\n%+v", first, second)
	}
}

func TestSelectDeduplicatesUsers(t *testing.T) {
	ch := choiceChallenge("A", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 10})
	parts := []models.Participation{
		entry("p-1", "u-1", "A", true, 0),
		entry("p-2", "u-1", "A", true, 1),
		entry("p-3", "u-1", "A", true, 2),
		entry("p-4", "u-2", "A", false, 3),
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.EligibleCount != 2 {
		t.Errorf("expected 2 eligible users, got %d", result.EligibleCount)
	}
	seen := map[string]bool{}
	for _, w := range result.Winners {
		if seen[w.UserID] {
			t.Errorf("user %s selected twice", w.UserID)
		}
		seen[w.UserID] = true
	}
	// u-1's duplicates count as losing rows even though u-1 won.
	if len(result.Winners)+len(result.LoserIDs) != len(parts) {
		t.Errorf("winners (%d) + losers (%d) != rows (%d)", len(result.Winners), len(result.LoserIDs), len(parts))
	}
}

func TestSelectNumericDedupKeepsClosest(t *testing.T) {
	ch := numericChallenge("1000", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 1})
	parts := []models.Participation{
		entry("p-1", "u-1", "1500", false, 0), // earlier but further away
		entry("p-2", "u-1", "990", false, 5),
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Winners) != 1 || result.Winners[0].Answer != "990" {
		t.Errorf("expected the closest duplicate to be retained, got %+v", result.Winners)
	}
}

func TestSelectTierConservation(t *testing.T) {
	tiers := []models.PrizeTier{
		{Rank: 1, AmountWithBonus: 100, AmountWithoutBonus: 50, Count: 2},
		{Rank: 2, AmountWithBonus: 30, AmountWithoutBonus: 15, Count: 5},
	}
	ch := choiceChallenge("A", tiers...)

	// Only 4 eligible users for 7 slots.
	var parts []models.Participation
	for i := 0; i < 4; i++ {
		parts = append(parts, entry(fmt.Sprintf("p-%d", i), fmt.Sprintf("u-%d", i), "A", i < 2, i))
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Winners) != 4 {
		t.Errorf("expected 4 winners (pool exhausted), got %d", len(result.Winners))
	}
	perTier := map[int]int{}
	for i, w := range result.Winners {
		perTier[w.TierRank]++
		if w.Rank != i+1 {
			t.Errorf("expected contiguous ranks, got %d at position %d", w.Rank, i)
		}
	}
	for _, tier := range tiers {
		if perTier[tier.Rank] > tier.Count {
			t.Errorf("tier %d got %d winners, count is %d", tier.Rank, perTier[tier.Rank], tier.Count)
		}
	}
}

func TestSelectRatioTarget(t *testing.T) {
	ch := choiceChallenge("A", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 10})

	// Both sub-pools can cover their quota: expect round(0.7*10)=7 / 3.
	var parts []models.Participation
	for i := 0; i < 15; i++ {
		parts = append(parts, entry(fmt.Sprintf("pb-%02d", i), fmt.Sprintf("ub-%02d", i), "A", true, i))
		parts = append(parts, entry(fmt.Sprintf("pn-%02d", i), fmt.Sprintf("un-%02d", i), "A", false, i))
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.BonusWinners != 7 || result.NonBonusWinners != 3 {
		t.Errorf("expected 7/3 bonus split, got %d/%d", result.BonusWinners, result.NonBonusWinners)
	}
}

func TestSelectRatioBackfill(t *testing.T) {
	ch := choiceChallenge("A", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 10})

	// Only 2 bonus holders: total count must still be met from non-holders.
	var parts []models.Participation
	for i := 0; i < 2; i++ {
		parts = append(parts, entry(fmt.Sprintf("pb-%02d", i), fmt.Sprintf("ub-%02d", i), "A", true, i))
	}
	for i := 0; i < 20; i++ {
		parts = append(parts, entry(fmt.Sprintf("pn-%02d", i), fmt.Sprintf("un-%02d", i), "A", false, i))
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Winners) != 10 {
		t.Errorf("expected full tier despite bonus shortfall, got %d winners", len(result.Winners))
	}
	if result.BonusWinners != 2 || result.NonBonusWinners != 8 {
		t.Errorf("expected 2/8 split after backfill, got %d/%d", result.BonusWinners, result.NonBonusWinners)
	}
}

func TestSelectProximityRanking(t *testing.T) {
	ch := numericChallenge("1000",
		models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 3})
	parts := []models.Participation{
		entry("p-1", "u-1", "700", false, 0),  // diff 300
		entry("p-2", "u-2", "1010", false, 1), // diff 10
		entry("p-3", "u-3", "1100", false, 2), // diff 100
		entry("p-4", "u-4", "960", false, 3),  // diff 40
		entry("p-5", "u-5", "not a number", false, 4),
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{}
	for _, w := range result.Winners {
		got = append(got, w.Answer)
	}
	want := []string{"1010", "960", "1100"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected proximity order %v, got %v", want, got)
	}
	if result.EligibleCount != 4 {
		t.Errorf("unparseable answer should not be eligible, got %d eligible", result.EligibleCount)
	}
}

func TestSelectChoiceScenario(t *testing.T) {
	ch := choiceChallenge("B",
		models.PrizeTier{Rank: 1, AmountWithBonus: 50, AmountWithoutBonus: 25, Count: 1},
		models.PrizeTier{Rank: 2, AmountWithBonus: 30, AmountWithoutBonus: 15, Count: 2})
	parts := []models.Participation{
		entry("p-1", "u-1", "B", true, 0),
		entry("p-2", "u-2", "B", true, 1),
		entry("p-3", "u-3", "B", true, 2),
		entry("p-4", "u-4", "B", false, 3),
		entry("p-5", "u-5", "B", false, 4),
		entry("p-6", "u-6", "C", false, 5), // wrong answer
	}

	result, err := Select(ch, parts, "0xdeadbeef", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Winners) != 3 {
		t.Fatalf("expected 3 winners, got %d", len(result.Winners))
	}
	if result.Winners[0].TierRank != 1 || !result.Winners[0].HasBonus {
		t.Errorf("rank-1 winner should come from the bonus sub-pool, got %+v", result.Winners[0])
	}
	if result.TotalAmount > 110 {
		t.Errorf("total distributed amount %v exceeds the 50+30+30 maximum", result.TotalAmount)
	}
	for _, w := range result.Winners {
		if w.Answer != "B" {
			t.Errorf("winner with wrong answer: %+v", w)
		}
	}
}

func TestSelectNumericScenario(t *testing.T) {
	ch := numericChallenge("1000",
		models.PrizeTier{Rank: 1, AmountWithBonus: 20, AmountWithoutBonus: 10, Count: 2})
	parts := []models.Participation{
		entry("p-1", "u-1", "900", false, 0),
		entry("p-2", "u-2", "950", false, 1),
		entry("p-3", "u-3", "1050", false, 2),
		entry("p-4", "u-4", "1100", false, 3),
		entry("p-5", "u-5", "1200", false, 4),
	}

	result, err := Select(ch, parts, "seed", Preview, testPolicy, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Winners) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(result.Winners))
	}
	got := map[string]bool{result.Winners[0].Answer: true, result.Winners[1].Answer: true}
	if !got["950"] || !got["1050"] {
		t.Errorf("expected the two closest entries 950 and 1050 to win, got %v", got)
	}
}

func TestSelectTargetOverridePreviewOnly(t *testing.T) {
	ch := numericChallenge("1000", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 1})
	parts := []models.Participation{entry("p-1", "u-1", "480", false, 0)}

	override := 500.0
	result, err := Select(ch, parts, "seed", Preview, testPolicy, &override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Target == nil || *result.Target != 500 {
		t.Errorf("expected override target 500, got %v", result.Target)
	}

	if _, err := Select(ch, parts, "seed", Commit, testPolicy, &override); !errors.Is(err, ErrOverrideNotAllowed) {
		t.Errorf("expected ErrOverrideNotAllowed in commit mode, got %v", err)
	}

	choice := choiceChallenge("A", models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 1})
	if _, err := Select(choice, parts, "seed", Preview, testPolicy, &override); !errors.Is(err, ErrOverrideNotAllowed) {
		t.Errorf("expected ErrOverrideNotAllowed for non-numeric override, got %v", err)
	}
}

func TestSelectErrors(t *testing.T) {
	tier := models.PrizeTier{Rank: 1, AmountWithBonus: 10, AmountWithoutBonus: 5, Count: 1}

	ch := choiceChallenge("A", tier)
	if _, err := Select(ch, []models.Participation{entry("p-1", "u-1", "B", false, 0)}, "seed", Preview, testPolicy, nil); !errors.Is(err, ErrNoEligibleEntries) {
		t.Errorf("expected ErrNoEligibleEntries, got %v", err)
	}

	ch = numericChallenge("not a number", tier)
	if _, err := Select(ch, []models.Participation{entry("p-1", "u-1", "100", false, 0)}, "seed", Preview, testPolicy, nil); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("expected ErrInvalidTarget, got %v", err)
	}

	ch = choiceChallenge("A", tier)
	ch.CorrectAnswer = nil
	if _, err := Select(ch, []models.Participation{entry("p-1", "u-1", "A", false, 0)}, "seed", Preview, testPolicy, nil); !errors.Is(err, ErrNoCorrectAnswer) {
		t.Errorf("expected ErrNoCorrectAnswer, got %v", err)
	}

	ch = choiceChallenge("A")
	if _, err := Select(ch, []models.Participation{entry("p-1", "u-1", "A", false, 0)}, "seed", Preview, testPolicy, nil); !errors.Is(err, ErrNoPrizeTiers) {
		t.Errorf("expected ErrNoPrizeTiers, got %v", err)
	}
}
