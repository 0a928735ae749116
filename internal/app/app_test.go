package app

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/predictor"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "quiz.db")
	return cfg
}

func TestNewWithSQLite(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.Nil(t, a.ModelCache)
	assert.Nil(t, a.ResultCache)

	report, err := a.QuestionService().ImportSamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Imported)

	id, err := a.ResultService().Create(ctx, &model.Result{
		UserID:            "u1",
		TotalScore:        80,
		QuestionsAnswered: 10,
		CorrectAnswers:    8,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	pred := a.Predictor(ctx)
	assert.Equal(t, predictor.Bootstrap(), pred.Current())
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "postgres"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
