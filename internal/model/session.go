package model

import "time"

// SessionLength is the number of questions in a full session
const SessionLength = 10

// QuizSession is the live state of one user's adaptive quiz
type QuizSession struct {
	ID                  string     `json:"sessionId"`
	UserID              string     `json:"userId"`
	CurrentDifficulty   Difficulty `json:"currentDifficulty"`
	QuestionsAnswered   int        `json:"questionsAnswered"`
	CorrectAnswers      int        `json:"correctAnswers"`
	AnsweredQuestionIDs []string   `json:"answeredQuestionIds"`
	LastQuestionID      string     `json:"lastQuestionId,omitempty"`
	IsCompleted         bool       `json:"isCompleted"`
	StartedAt           time.Time  `json:"startedAt"`
}

// Accuracy is correct/answered as a percentage, 0 before any answer
func (s *QuizSession) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered) * 100
}

// HasServed reports whether id is already in the exclusion set
func (s *QuizSession) HasServed(id string) bool {
	for _, seen := range s.AnsweredQuestionIDs {
		if seen == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (s *QuizSession) Clone() *QuizSession {
	c := *s
	c.AnsweredQuestionIDs = make([]string, len(s.AnsweredQuestionIDs))
	copy(c.AnsweredQuestionIDs, s.AnsweredQuestionIDs)
	return &c
}
