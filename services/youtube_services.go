package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"api/config"
	"api/models"
)

// FetchVideoMetric asks the stats proxy for a point-in-time value of one
// video metric. The returned value becomes the numeric target a YouTube
// challenge is proximity-ranked against.
func FetchVideoMetric(videoID string, challengeType string) (int64, error) {
	var metric string
	switch challengeType {
	case models.ChallengeTypeYoutubeViews:
		metric = "views"
	case models.ChallengeTypeYoutubeLikes:
		metric = "likes"
	case models.ChallengeTypeYoutubeComments:
		metric = "comments"
	default:
		return 0, fmt.Errorf("challenge type %q has no video metric", challengeType)
	}

	url := fmt.Sprintf("%s/videos/%s/stats?metric=%s", config.YoutubeStatsUrl, videoID, metric)
	resp, err := http.Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to reach stats proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("stats proxy returned %s", resp.Status)
	}

	var result struct {
		Value int64 `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode stats response: %w", err)
	}
	return result.Value, nil
}
