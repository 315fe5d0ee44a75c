package selection

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"api/models"
)

// Mode distinguishes the repeatable dry run from the single irrevocable
// selection execution. The engine itself never writes; Commit only changes
// which inputs are legal (no target override) so the caller can persist the
// result it returns.
type Mode int

const (
	Preview Mode = iota
	Commit
)

var (
	// ErrNoEligibleEntries is returned when no entry matches the correct
	// answer (or no entry parses as a number for numeric challenges).
	ErrNoEligibleEntries = errors.New("no eligible entries")
	// ErrInvalidTarget is returned when a numeric challenge has neither a
	// parseable correct answer nor a target override.
	ErrInvalidTarget = errors.New("no parseable numeric target")
	// ErrNoCorrectAnswer is returned when a choice or open challenge has no
	// correct answer resolved.
	ErrNoCorrectAnswer = errors.New("challenge has no correct answer")
	// ErrOverrideNotAllowed is returned when a target override is passed
	// outside Preview mode or for a non-numeric challenge.
	ErrOverrideNotAllowed = errors.New("target override is only allowed when previewing a numeric challenge")
	// ErrNoPrizeTiers is returned when the challenge has no prize table.
	ErrNoPrizeTiers = errors.New("challenge has no prize tiers")
)

// Policy tunes the bonus-holder ratio constraint. The ratio is a soft
// target: an exhausted sub-pool is backfilled from the other, and the
// per-tier winner count is the only hard bound.
type Policy struct {
	BonusRatio float64
}

// Winner is one selected entry with its awarded tier amount. Rank is the
// 1-based position in the overall winner ordering, kept for display and
// tie-break auditing; TierRank is the prize tier that awarded the amount.
type Winner struct {
	ParticipationID string  `json:"participation_id"`
	UserID          string  `json:"user_id"`
	Rank            int     `json:"rank"`
	TierRank        int     `json:"tier_rank"`
	Answer          string  `json:"answer"`
	HasBonus        bool    `json:"has_bonus"`
	PrizeAmount     float64 `json:"prize_amount"`
}

// Result is the full outcome of one selection run. LoserIDs covers every
// participation row that is not a winning row, including extra entries
// submitted by winning users, so a commit can mark the whole challenge.
type Result struct {
	Winners         []Winner `json:"winners"`
	LoserIDs        []string `json:"-"`
	EligibleCount   int      `json:"eligible_count"`
	Target          *float64 `json:"target,omitempty"`
	BonusWinners    int      `json:"bonus_winners"`
	NonBonusWinners int      `json:"non_bonus_winners"`
	TotalAmount     float64  `json:"total_amount"`
	Seed            string   `json:"seed"`
}

// candidate is one deduplicated eligible entry during ranking.
type candidate struct {
	row     *models.Participation
	diff    float64 // |answer - target|, numeric challenges only
	drawPos int     // position in the seed-derived permutation
}

// Select runs the winner selection algorithm for a closed challenge.
//
// Eligible entries are deduplicated to one per user, ranked (by proximity
// for numeric challenges, by seeded draw otherwise) and consumed tier by
// tier under the bonus-holder ratio policy. The same challenge, entries and
// seed always produce the identical result regardless of input order.
func Select(ch *models.Challenge, parts []models.Participation, seed string, mode Mode, policy Policy, targetOverride *float64) (*Result, error) {
	if len(ch.PrizeTiers) == 0 {
		return nil, ErrNoPrizeTiers
	}
	if targetOverride != nil && (mode != Preview || !ch.IsNumeric()) {
		return nil, ErrOverrideNotAllowed
	}

	numeric := ch.IsNumeric()
	var target float64
	var correct string
	if numeric {
		resolved, err := resolveTarget(ch, targetOverride)
		if err != nil {
			return nil, err
		}
		target = resolved
	} else {
		if ch.CorrectAnswer == nil || *ch.CorrectAnswer == "" {
			return nil, ErrNoCorrectAnswer
		}
		correct = *ch.CorrectAnswer
	}

	// Canonicalize input order so the seed is the only source of shuffle
	// variance between runs.
	rows := make([]*models.Participation, 0, len(parts))
	for i := range parts {
		rows = append(rows, &parts[i])
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	// Step 1: filter to eligible entries.
	eligible := make([]candidate, 0, len(rows))
	for _, row := range rows {
		if numeric {
			value, err := strconv.ParseFloat(row.Answer, 64)
			if err != nil {
				continue
			}
			eligible = append(eligible, candidate{row: row, diff: math.Abs(value - target)})
		} else if row.Answer == correct {
			eligible = append(eligible, candidate{row: row})
		}
	}

	// Step 2: deduplicate by user.
	best := make(map[string]candidate)
	for _, cand := range eligible {
		prev, seen := best[cand.row.UserID]
		if !seen || betterDuplicate(cand, prev, numeric) {
			best[cand.row.UserID] = cand
		}
	}
	if len(best) == 0 {
		return nil, ErrNoEligibleEntries
	}

	pool := make([]candidate, 0, len(best))
	for _, cand := range best {
		pool = append(pool, cand)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].row.ID < pool[j].row.ID })

	// Step 3: rank. The seed-derived permutation is the random draw for
	// equally-correct entries and the tie-break for equal proximity.
	order := shuffleOrder(len(pool), seed)
	for i := range pool {
		pool[i].drawPos = order[i]
	}
	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if numeric && a.diff != b.diff {
			return a.diff < b.diff
		}
		if a.drawPos != b.drawPos {
			return a.drawPos < b.drawPos
		}
		return a.row.CreatedAt.Before(b.row.CreatedAt)
	})

	// Steps 4-5: fill tiers under the ratio policy and assign amounts.
	winners := fillTiers(ch.PrizeTiers, pool, policy)

	result := &Result{
		Winners:       winners,
		EligibleCount: len(pool),
		Seed:          seed,
	}
	if numeric {
		result.Target = &target
	}

	selected := make(map[string]bool, len(winners))
	for _, w := range winners {
		selected[w.ParticipationID] = true
		if w.HasBonus {
			result.BonusWinners++
		} else {
			result.NonBonusWinners++
		}
		result.TotalAmount += w.PrizeAmount
	}
	for _, row := range rows {
		if !selected[row.ID] {
			result.LoserIDs = append(result.LoserIDs, row.ID)
		}
	}
	return result, nil
}

// resolveTarget picks the numeric target: the preview override when given,
// otherwise the stored correct answer.
func resolveTarget(ch *models.Challenge, override *float64) (float64, error) {
	if override != nil {
		return *override, nil
	}
	if ch.CorrectAnswer == nil {
		return 0, ErrInvalidTarget
	}
	target, err := strconv.ParseFloat(*ch.CorrectAnswer, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTarget, *ch.CorrectAnswer)
	}
	return target, nil
}

// betterDuplicate reports whether cand should replace prev as a user's
// single retained entry. Numeric challenges keep the closest answer;
// ties and non-numeric challenges keep the earliest submission.
func betterDuplicate(cand, prev candidate, numeric bool) bool {
	if numeric && cand.diff != prev.diff {
		return cand.diff < prev.diff
	}
	return cand.row.CreatedAt.Before(prev.row.CreatedAt)
}

// fillTiers consumes the ranked pool tier by tier. Each tier targets
// round(BonusRatio * count) bonus holders, taken in ranked order within
// each sub-pool; shortfall in one sub-pool is backfilled from the other.
func fillTiers(tiers []models.PrizeTier, pool []candidate, policy Policy) []Winner {
	var bonus, nonBonus []candidate
	for _, cand := range pool {
		if cand.row.HasBonus {
			bonus = append(bonus, cand)
		} else {
			nonBonus = append(nonBonus, cand)
		}
	}

	sorted := make([]models.PrizeTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	var winners []Winner
	rank := 0
	for _, tier := range sorted {
		quota := int(math.Round(policy.BonusRatio * float64(tier.Count)))
		if quota > tier.Count {
			quota = tier.Count
		}

		take := func(n int, from *[]candidate) []candidate {
			if n > len(*from) {
				n = len(*from)
			}
			taken := (*from)[:n]
			*from = (*from)[n:]
			return taken
		}

		picks := take(quota, &bonus)
		picks = append(picks, take(tier.Count-len(picks), &nonBonus)...)
		// Backfill from bonus holders when the non-bonus pool ran dry.
		picks = append(picks, take(tier.Count-len(picks), &bonus)...)

		// Overall rank follows the ranked-pool order, not pick order.
		// diff is zero for non-numeric challenges, leaving the draw order.
		sort.Slice(picks, func(i, j int) bool {
			if picks[i].diff != picks[j].diff {
				return picks[i].diff < picks[j].diff
			}
			return picks[i].drawPos < picks[j].drawPos
		})

		for _, pick := range picks {
			rank++
			amount := tier.AmountWithoutBonus
			if pick.row.HasBonus {
				amount = tier.AmountWithBonus
			}
			winners = append(winners, Winner{
				ParticipationID: pick.row.ID,
				UserID:          pick.row.UserID,
				Rank:            rank,
				TierRank:        tier.Rank,
				Answer:          pick.row.Answer,
				HasBonus:        pick.row.HasBonus,
				PrizeAmount:     amount,
			})
		}
		if len(bonus) == 0 && len(nonBonus) == 0 {
			break
		}
	}
	return winners
}
