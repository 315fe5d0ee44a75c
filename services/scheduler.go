package services

import (
	"fmt"
	"log"
	"time"

	"api/database"
	"api/models"

	"github.com/go-co-op/gocron/v2"
)

// StartMetricScheduler snapshots YouTube metric values for challenges whose
// fetch deadline has passed. The snapshot becomes the challenge's correct
// answer, after which the operator can preview and commit the selection.
func StartMetricScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal("failed to create scheduler: ", err)
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(snapshotDueMetrics),
	)
	if err != nil {
		log.Fatal("failed to schedule metric snapshots: ", err)
	}
}

func snapshotDueMetrics() {
	var challenges []models.Challenge
	now := time.Now()
	err := database.DB.
		Where("challenge_type IN ? AND metric_deadline <= ? AND correct_answer IS NULL",
			[]string{models.ChallengeTypeYoutubeViews, models.ChallengeTypeYoutubeLikes, models.ChallengeTypeYoutubeComments},
			now).
		Find(&challenges).Error
	if err != nil {
		log.Printf("[Scheduler] DB error: %v", err)
		return
	}

	for _, challenge := range challenges {
		value, err := FetchVideoMetric(challenge.VideoID, challenge.ChallengeType)
		if err != nil {
			log.Printf("[Scheduler] Failed to snapshot metric for challenge %s: %v", challenge.ID, err)
			continue
		}

		answer := fmt.Sprintf("%d", value)
		if err := database.DB.Model(&models.Challenge{}).
			Where("id = ? AND correct_answer IS NULL", challenge.ID).
			Update("correct_answer", answer).Error; err != nil {
			log.Printf("[Scheduler] Failed to store metric for challenge %s: %v", challenge.ID, err)
			continue
		}
		log.Printf("[Scheduler] Challenge %s: snapshotted %s = %s", challenge.ID, challenge.ChallengeType, answer)
	}
}
