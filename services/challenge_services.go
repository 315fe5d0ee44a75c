package services

import (
	"fmt"
	"time"

	"api/config"
	"api/database"
	"api/models"
)

// ChallengeExists reports whether a challenge with the given id exists
func ChallengeExists(challengeID string) bool {
	var count int64
	database.DB.Model(&models.Challenge{}).Where("id = ?", challengeID).Count(&count)
	return count > 0
}

// GetChallenge fetches a challenge by id
func GetChallenge(challengeID string) (models.Challenge, error) {
	var challenge models.Challenge
	if err := database.DB.First(&challenge, "id = ?", challengeID).Error; err != nil {
		return models.Challenge{}, fmt.Errorf("failed to fetch challenge: %w", err)
	}
	return challenge, nil
}

// AppendEntry records one participation row for a user. The entry window and
// the per-user entry cap are enforced here; has_bonus is snapshotted from the
// caller and never revisited.
func AppendEntry(challenge models.Challenge, userID string, answer string, hasBonus bool) (models.Participation, error) {
	now := time.Now()
	if now.Before(challenge.EntryStart) || now.After(challenge.EntryEnd) {
		return models.Participation{}, fmt.Errorf("entry window is closed")
	}
	if challenge.Status != models.ChallengeStatusOpen {
		return models.Participation{}, fmt.Errorf("challenge is no longer open")
	}

	var count int64
	if err := database.DB.Model(&models.Participation{}).
		Where("challenge_id = ? AND user_id = ?", challenge.ID, userID).
		Count(&count).Error; err != nil {
		return models.Participation{}, fmt.Errorf("database error: %w", err)
	}
	if count >= int64(config.DefaultSelectionConfig.MaxEntries) {
		return models.Participation{}, fmt.Errorf("entry limit of %d reached", config.DefaultSelectionConfig.MaxEntries)
	}

	entry := models.Participation{
		ChallengeID: challenge.ID,
		UserID:      userID,
		Answer:      answer,
		HasBonus:    hasBonus,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return models.Participation{}, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns all participation rows for a challenge
func ListEntries(challengeID string) ([]models.Participation, error) {
	var entries []models.Participation
	if err := database.DB.Where("challenge_id = ?", challengeID).
		Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	return entries, nil
}

// ListUserEntries returns a user's participation rows for a challenge
func ListUserEntries(challengeID string, userID string) ([]models.Participation, error) {
	var entries []models.Participation
	if err := database.DB.Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	return entries, nil
}

// ListWinners returns the winning participation rows ordered by win rank
func ListWinners(challengeID string) ([]models.Participation, error) {
	var winners []models.Participation
	if err := database.DB.Where("challenge_id = ? AND is_winner = true", challengeID).
		Preload("User").Order("win_rank asc").Find(&winners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch winners: %w", err)
	}
	return winners, nil
}
