package event

import (
	"context"
	"testing"

	"adaptivequiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledPublisherIsNoop(t *testing.T) {
	p, err := NewPublisher("", "")
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	err = p.PublishSessionCompleted(context.Background(), &model.SessionSummary{SessionID: "s1"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestNewSessionCompletedEvent(t *testing.T) {
	ev := NewSessionCompletedEvent(&model.SessionSummary{
		SessionID:         "s1",
		UserID:            "u1",
		FinalScore:        30,
		QuestionsAnswered: 10,
		CorrectAnswers:    3,
		FinalDifficulty:   model.DifficultyEasy,
		NextDifficulty:    model.DifficultyEasy,
		ResultID:          "r1",
	})
	assert.Equal(t, SessionCompleted, ev.EventType)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, 30.0, ev.FinalScore)
	assert.Equal(t, "r1", ev.ResultID)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestNewPublisherBadURI(t *testing.T) {
	_, err := NewPublisher("amqp://127.0.0.1:1/", "")
	assert.Error(t, err)
}
