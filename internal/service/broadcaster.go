package service

import (
	"adaptivequiz/internal/model"
	"context"
)

// Session event names pushed to WebSocket subscribers
const (
	EventQuestionServed   = "question_served"
	EventAnswerGraded     = "answer_graded"
	EventSessionCompleted = "session_completed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
	DisconnectSession(sessionID string)
}

// EventPublisher forwards finished sessions to the message bus
type EventPublisher interface {
	PublishSessionCompleted(ctx context.Context, summary *model.SessionSummary) error
}
