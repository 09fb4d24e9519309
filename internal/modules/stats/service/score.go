package service

import "math"

// Display score weights. The score is derived on every read and never stored,
// so the weights can change without a data migration.
const (
	ScorePerCompletedPath = 100
	ScorePerCollectedItem = 50
	ScorePerKilometer     = 10
)

// Score computes the display score from aggregate stats.
func Score(completedPaths, collectedItems int, totalDistanceKm float64) int {
	return completedPaths*ScorePerCompletedPath +
		collectedItems*ScorePerCollectedItem +
		int(math.Floor(totalDistanceKm))*ScorePerKilometer
}

// CompletionPercentage is the rounded share of published paths the user has
// completed; zero when nothing is published (never a division by zero).
func CompletionPercentage(completed, totalPublished int) int {
	if totalPublished == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(totalPublished) * 100))
}
