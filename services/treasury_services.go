package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"api/config"
)

// TreasuryClient talks to the payout/ledger service that holds the prize
// pool and executes the actual fund transfers. The transport is an opaque
// RPC; this client only knows parameters and structured results.
type TreasuryClient struct {
	baseURL string
	client  *http.Client
}

func NewTreasuryClient() *TreasuryClient {
	return &TreasuryClient{
		baseURL: config.TreasuryUrl,
		client:  http.DefaultClient,
	}
}

// GetBalance returns the funding balance available for prize distribution
func (t *TreasuryClient) GetBalance(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/balance", nil)
	if err != nil {
		return 0, err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach treasury: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("treasury returned %s", resp.Status)
	}

	var result struct {
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode treasury response: %w", err)
	}
	return result.Balance, nil
}

// PayoutRequest is one fund transfer instruction sent to the treasury
type PayoutRequest struct {
	Reference   string  `json:"reference"`
	ChallengeID string  `json:"challenge_id"`
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Destination string  `json:"destination"` // wallet push or claimable credit
	Wallet      string  `json:"wallet,omitempty"`
}

// SendPayout submits one payout instruction. The caller applies a
// per-recipient timeout through ctx; a failure here only fails this
// recipient, never the batch.
func (t *TreasuryClient) SendPayout(ctx context.Context, payout PayoutRequest) error {
	body, err := json.Marshal(payout)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/payouts", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach treasury: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("treasury rejected payout %s: %s", payout.Reference, resp.Status)
	}
	return nil
}
