package scoring

import "adaptivequiz/internal/model"

// Tier boundaries shared by in-session adaptation, next-session
// recommendation and predictor bootstrap.
const (
	MediumThreshold = 40.0
	HardThreshold   = 70.0
)

// SelectDifficulty maps an accuracy percentage to a tier
func SelectDifficulty(score float64) model.Difficulty {
	switch {
	case score >= HardThreshold:
		return model.DifficultyHard
	case score >= MediumThreshold:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

// FinalScore is correct/answered*100, 0 when nothing was answered
func FinalScore(correct, answered int) float64 {
	if answered <= 0 {
		return 0
	}
	return float64(correct) / float64(answered) * 100
}
