package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"api/config"
)

// SelectionSeed is the verifiable randomness triple served by the oracle
// once a challenge's entry window has closed. The seed is derived from the
// block hash and makes every tie-break reproducible and auditable.
type SelectionSeed struct {
	BlockNumber int64  `json:"block_number"`
	BlockHash   string `json:"block_hash"`
	Seed        string `json:"seed"`
}

// FetchSelectionSeed asks the randomness oracle for the seed bound to a challenge
func FetchSelectionSeed(challengeID string) (SelectionSeed, error) {
	url := fmt.Sprintf("%s/seed?challenge_id=%s", config.OracleUrl, challengeID)
	resp, err := http.Get(url)
	if err != nil {
		return SelectionSeed{}, fmt.Errorf("failed to reach randomness oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SelectionSeed{}, fmt.Errorf("randomness oracle returned %s", resp.Status)
	}

	var seed SelectionSeed
	if err := json.NewDecoder(resp.Body).Decode(&seed); err != nil {
		return SelectionSeed{}, fmt.Errorf("failed to decode oracle response: %w", err)
	}
	if seed.Seed == "" {
		return SelectionSeed{}, fmt.Errorf("randomness oracle returned an empty seed")
	}
	return seed, nil
}
