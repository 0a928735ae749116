package predictor

import (
	"context"
	"errors"
	"testing"

	"adaptivequiz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	saved   *model.DifficultyModel
	loadErr error
	saveErr error
	saves   int
}

func (s *memStore) Load(ctx context.Context) (*model.DifficultyModel, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.saved, nil
}

func (s *memStore) Save(ctx context.Context, m *model.DifficultyModel) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	c := *m
	s.saved = &c
	return nil
}

func results(scores ...float64) []*model.Result {
	out := make([]*model.Result, 0, len(scores))
	for _, s := range scores {
		out = append(out, &model.Result{TotalScore: s})
	}
	return out
}

func TestBootstrapMatchesSelectorBoundaries(t *testing.T) {
	m := NewThresholdModel(nil)
	assert.Equal(t, model.DifficultyEasy, m.Predict(0))
	assert.Equal(t, model.DifficultyEasy, m.Predict(39))
	assert.Equal(t, model.DifficultyMedium, m.Predict(40))
	assert.Equal(t, model.DifficultyMedium, m.Predict(69))
	assert.Equal(t, model.DifficultyHard, m.Predict(70))
	assert.Equal(t, model.DifficultyHard, m.Predict(100))
}

func TestTrainEmptyHistoryKeepsModel(t *testing.T) {
	store := &memStore{}
	m := NewThresholdModel(store)
	require.NoError(t, m.Train(context.Background(), nil))
	assert.Equal(t, Bootstrap(), m.Current())
	assert.Zero(t, store.saves)
}

func TestTrainMovesCutsToClassGaps(t *testing.T) {
	m := NewThresholdModel(nil)
	require.NoError(t, m.Train(context.Background(), results(10, 20, 50, 60, 80, 90)))

	cur := m.Current()
	assert.InDelta(t, 35.0, cur.MediumCut, 1e-9)
	assert.InDelta(t, 70.0, cur.HardCut, 1e-9)
	assert.Equal(t, 6, cur.Samples)

	assert.Equal(t, model.DifficultyEasy, m.Predict(34))
	assert.Equal(t, model.DifficultyMedium, m.Predict(36))
}

func TestTrainIsIdempotent(t *testing.T) {
	m := NewThresholdModel(nil)
	history := results(0, 30, 45, 65, 75, 100)
	require.NoError(t, m.Train(context.Background(), history))
	first := m.Current()
	require.NoError(t, m.Train(context.Background(), history))
	second := m.Current()
	assert.Equal(t, first.MediumCut, second.MediumCut)
	assert.Equal(t, first.HardCut, second.HardCut)
}

func TestTrainMissingClassKeepsPriorCut(t *testing.T) {
	m := NewThresholdModel(nil)
	require.NoError(t, m.Train(context.Background(), results(80, 95)))
	cur := m.Current()
	assert.Equal(t, 40.0, cur.MediumCut)
	assert.Equal(t, 70.0, cur.HardCut)
}

func TestTrainPersistsAndLoadSavedRestores(t *testing.T) {
	store := &memStore{}
	m := NewThresholdModel(store)
	require.NoError(t, m.Train(context.Background(), results(20, 50, 90)))
	require.NotNil(t, store.saved)

	restored := NewThresholdModel(store)
	require.NoError(t, restored.LoadSaved(context.Background()))
	assert.Equal(t, m.Current().MediumCut, restored.Current().MediumCut)
	assert.Equal(t, m.Current().HardCut, restored.Current().HardCut)
}

func TestSaveFailureDoesNotFailTrain(t *testing.T) {
	store := &memStore{saveErr: errors.New("redis down")}
	m := NewThresholdModel(store)
	assert.NoError(t, m.Train(context.Background(), results(20, 50)))
	assert.Equal(t, 1, store.saves)
}

func TestLoadSavedIgnoresInvalidModel(t *testing.T) {
	store := &memStore{saved: &model.DifficultyModel{MediumCut: 80, HardCut: 20}}
	m := NewThresholdModel(store)
	require.NoError(t, m.LoadSaved(context.Background()))
	assert.Equal(t, Bootstrap(), m.Current())

	store.loadErr = errors.New("boom")
	assert.Error(t, m.LoadSaved(context.Background()))
	assert.Equal(t, Bootstrap(), m.Current())
}

func TestTrainHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewThresholdModel(nil)
	assert.ErrorIs(t, m.Train(ctx, results(10, 90)), context.Canceled)
}
