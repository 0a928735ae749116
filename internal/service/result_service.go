package service

import (
	"adaptivequiz/internal/cache"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/scoring"
	"context"
	"fmt"
	"log"
	"strings"
)

// ResultService stores and lists session results, with an optional
// per-user Redis cache in front of the store. It satisfies
// repository.ResultRepo so the quiz engine writes through it.
type ResultService struct {
	repo  repository.ResultRepo
	cache cache.ResultCache
}

// NewResultService creates a new result service. resultCache may be nil.
func NewResultService(repo repository.ResultRepo, resultCache cache.ResultCache) *ResultService {
	return &ResultService{
		repo:  repo,
		cache: resultCache,
	}
}

// Create validates and stores a result, filling feedback and the
// recommended tier when they are missing
func (s *ResultService) Create(ctx context.Context, r *model.Result) (string, error) {
	if s.repo == nil {
		return "", ErrStoreUnavailable
	}
	if r == nil || strings.TrimSpace(r.UserID) == "" {
		return "", fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}
	if r.TotalScore < 0 || r.TotalScore > 100 {
		return "", fmt.Errorf("%w: totalScore must be within 0-100", ErrInvalidInput)
	}
	if r.CorrectAnswers < 0 || r.CorrectAnswers > r.QuestionsAnswered {
		return "", fmt.Errorf("%w: correctAnswers must be within 0-questionsAnswered", ErrInvalidInput)
	}
	if r.Feedback == "" {
		r.Feedback = scoring.Feedback(r.TotalScore)
	}
	if r.NextDifficulty == "" {
		r.NextDifficulty = scoring.SelectDifficulty(r.TotalScore)
	}

	id, err := s.repo.Create(ctx, r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, r.UserID); err != nil {
			log.Printf("result cache invalidate %s: %v", r.UserID, err)
		}
	}
	return id, nil
}

// GetAll returns every stored result
func (s *ResultService) GetAll(ctx context.Context) ([]*model.Result, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	results, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if results == nil {
		results = []*model.Result{}
	}
	return results, nil
}

// GetByUser returns a user's results, newest first
func (s *ResultService) GetByUser(ctx context.Context, userID string) ([]*model.Result, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}
	if s.cache != nil {
		cached, err := s.cache.GetUserResults(ctx, userID)
		if err != nil {
			log.Printf("result cache read %s: %v", userID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	results, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if results == nil {
		results = []*model.Result{}
	}
	if s.cache != nil {
		if err := s.cache.SetUserResults(ctx, userID, results); err != nil {
			log.Printf("result cache write %s: %v", userID, err)
		}
	}
	return results, nil
}
