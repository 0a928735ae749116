package event

import (
	"adaptivequiz/internal/model"
	"time"
)

// Routing keys
const (
	SessionCompleted = "quiz.session.completed"
)

// SessionCompletedEvent is published when a quiz session finishes
type SessionCompletedEvent struct {
	EventType         string           `json:"eventType"`
	SessionID         string           `json:"sessionId"`
	UserID            string           `json:"userId"`
	FinalScore        float64          `json:"finalScore"`
	QuestionsAnswered int              `json:"questionsAnswered"`
	CorrectAnswers    int              `json:"correctAnswers"`
	FinalDifficulty   model.Difficulty `json:"finalDifficulty"`
	NextDifficulty    model.Difficulty `json:"nextDifficulty"`
	ResultID          string           `json:"resultId,omitempty"`
	Timestamp         time.Time        `json:"timestamp"`
}

// NewSessionCompletedEvent builds the event from a session summary
func NewSessionCompletedEvent(s *model.SessionSummary) *SessionCompletedEvent {
	return &SessionCompletedEvent{
		EventType:         SessionCompleted,
		SessionID:         s.SessionID,
		UserID:            s.UserID,
		FinalScore:        s.FinalScore,
		QuestionsAnswered: s.QuestionsAnswered,
		CorrectAnswers:    s.CorrectAnswers,
		FinalDifficulty:   s.FinalDifficulty,
		NextDifficulty:    s.NextDifficulty,
		ResultID:          s.ResultID,
		Timestamp:         time.Now().UTC(),
	}
}
