package scoring

import "strings"

const (
	MsgCorrect      = "Correct"
	MsgIncorrect    = "Incorrect"
	MsgInvalidInput = "Invalid input"
)

// Grade is the outcome of comparing one answer. Score is 0 or 1.
type Grade struct {
	IsCorrect bool
	Score     int
	Message   string
}

// GradeAnswer compares answers ignoring case and surrounding whitespace.
// An empty answer on either side is a soft failure, not an error.
func GradeAnswer(userAnswer, correctAnswer string) Grade {
	u := strings.TrimSpace(userAnswer)
	c := strings.TrimSpace(correctAnswer)
	if u == "" || c == "" {
		return Grade{IsCorrect: false, Score: 0, Message: MsgInvalidInput}
	}
	if strings.EqualFold(u, c) {
		return Grade{IsCorrect: true, Score: 1, Message: MsgCorrect}
	}
	return Grade{IsCorrect: false, Score: 0, Message: MsgIncorrect}
}
