package predictor

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/scoring"
	"context"
	"log"
	"sync"
	"time"
)

// Predictor picks a starting tier from a user's previous score
type Predictor interface {
	Predict(previousScore float64) model.Difficulty
	Train(ctx context.Context, results []*model.Result) error
}

// ModelStore persists trained cut points across restarts
type ModelStore interface {
	Load(ctx context.Context) (*model.DifficultyModel, error)
	Save(ctx context.Context, m *model.DifficultyModel) error
}

// ThresholdModel is a three-bucket classifier with two learned cut points.
// It starts from the selector boundaries and moves each cut to the midpoint
// of the gap between adjacent labelled classes seen in history.
type ThresholdModel struct {
	mu    sync.RWMutex
	cur   model.DifficultyModel
	store ModelStore
}

// Bootstrap returns the untrained model
func Bootstrap() model.DifficultyModel {
	return model.DifficultyModel{
		MediumCut: scoring.MediumThreshold,
		HardCut:   scoring.HardThreshold,
	}
}

// NewThresholdModel creates a bootstrapped model. store may be nil.
func NewThresholdModel(store ModelStore) *ThresholdModel {
	return &ThresholdModel{cur: Bootstrap(), store: store}
}

// LoadSaved replaces the bootstrap with the persisted model if there is one.
// On any failure the current model is kept.
func (m *ThresholdModel) LoadSaved(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	saved, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	if !saved.Valid() {
		return nil
	}
	m.mu.Lock()
	m.cur = *saved
	m.mu.Unlock()
	return nil
}

// Predict classifies a 0-100 score
func (m *ThresholdModel) Predict(previousScore float64) model.Difficulty {
	m.mu.RLock()
	cur := m.cur
	m.mu.RUnlock()

	switch {
	case previousScore >= cur.HardCut:
		return model.DifficultyHard
	case previousScore >= cur.MediumCut:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

// Current returns a copy of the active cut points
func (m *ThresholdModel) Current() model.DifficultyModel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Train refits both cut points from result history. Empty history is a no-op.
func (m *ThresholdModel) Train(ctx context.Context, results []*model.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	samples := 0
	var b bounds
	for _, r := range results {
		if r == nil {
			continue
		}
		b.add(r.TotalScore, scoring.SelectDifficulty(r.TotalScore))
		samples++
	}
	if samples == 0 {
		return nil
	}

	m.mu.Lock()
	next := m.cur
	if b.has[model.DifficultyEasy] && b.has[model.DifficultyMedium] {
		next.MediumCut = (b.max[model.DifficultyEasy] + b.min[model.DifficultyMedium]) / 2
	}
	if b.has[model.DifficultyMedium] && b.has[model.DifficultyHard] {
		next.HardCut = (b.max[model.DifficultyMedium] + b.min[model.DifficultyHard]) / 2
	}
	next.Samples = samples
	next.TrainedAt = time.Now().UTC()
	m.cur = next
	m.mu.Unlock()

	log.Printf("predictor retrained on %d results: medium>=%.2f hard>=%.2f", samples, next.MediumCut, next.HardCut)

	if m.store != nil {
		if err := m.store.Save(ctx, &next); err != nil {
			log.Printf("predictor save failed: %v", err)
		}
	}
	return nil
}

type bounds struct {
	has map[model.Difficulty]bool
	min map[model.Difficulty]float64
	max map[model.Difficulty]float64
}

func (b *bounds) add(score float64, label model.Difficulty) {
	if b.has == nil {
		b.has = make(map[model.Difficulty]bool)
		b.min = make(map[model.Difficulty]float64)
		b.max = make(map[model.Difficulty]float64)
	}
	if !b.has[label] {
		b.has[label] = true
		b.min[label] = score
		b.max[label] = score
		return
	}
	if score < b.min[label] {
		b.min[label] = score
	}
	if score > b.max[label] {
		b.max[label] = score
	}
}
