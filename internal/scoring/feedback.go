package scoring

const (
	FeedbackExcellent = "Excellent! You have mastered this topic."
	FeedbackGood      = "Good job! Keep practicing to improve further."
	FeedbackFair      = "Fair effort. Review the material and try again."
	FeedbackPoor      = "Needs improvement. Focus on the basics and practice more."
)

// Feedback maps a final 0-100 score to a fixed message
func Feedback(score float64) string {
	switch {
	case score >= 90:
		return FeedbackExcellent
	case score >= 70:
		return FeedbackGood
	case score >= 40:
		return FeedbackFair
	default:
		return FeedbackPoor
	}
}
