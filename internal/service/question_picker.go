package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"context"
	"fmt"
	"math/rand"
)

// DefaultSampleLimit bounds the unconstrained draw
const DefaultSampleLimit = 100

// questionPicker chooses uniformly among stored questions that are not excluded
type questionPicker struct {
	repo        repository.QuestionRepo
	sampleLimit int
	intn        func(n int) int
}

func newQuestionPicker(repo repository.QuestionRepo, sampleLimit int, intn func(int) int) *questionPicker {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &questionPicker{repo: repo, sampleLimit: sampleLimit, intn: intn}
}

// pick returns nil, nil when nothing is left. An empty difficulty draws from
// a bounded sample of all tiers.
func (p *questionPicker) pick(ctx context.Context, difficulty model.Difficulty, excluded func(id string) bool) (*model.Question, error) {
	if p.repo == nil {
		return nil, ErrStoreUnavailable
	}

	var (
		candidates []*model.Question
		err        error
	)
	if difficulty == "" {
		candidates, err = p.repo.GetAll(ctx, p.sampleLimit)
	} else {
		candidates, err = p.repo.GetByDifficulty(ctx, difficulty)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	pool := make([]*model.Question, 0, len(candidates))
	for _, q := range candidates {
		if q == nil || (excluded != nil && excluded(q.ID)) {
			continue
		}
		pool = append(pool, q)
	}
	if len(pool) == 0 {
		return nil, nil
	}
	return pool[p.intn(len(pool))], nil
}

// pickWithFallback retries without a tier when the requested one is exhausted
func (p *questionPicker) pickWithFallback(ctx context.Context, difficulty model.Difficulty, excluded func(id string) bool) (*model.Question, error) {
	q, err := p.pick(ctx, difficulty, excluded)
	if err != nil || q != nil {
		return q, err
	}
	return p.pick(ctx, "", excluded)
}
