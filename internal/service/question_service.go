package service

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/repository"
	"context"
	"fmt"
	"html"
	"log"
	"math/rand"
	"strings"
)

// QuestionService handles question administration and imports
type QuestionService struct {
	repo    repository.QuestionRepo
	trivia  *TriviaClient
	shuffle func(n int, swap func(i, j int))
}

// NewQuestionService creates a new question service. trivia may be nil.
func NewQuestionService(repo repository.QuestionRepo, trivia *TriviaClient) *QuestionService {
	return &QuestionService{
		repo:    repo,
		trivia:  trivia,
		shuffle: rand.Shuffle,
	}
}

// Create validates and stores a question
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	q, err := buildQuestion(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return q, nil
}

// GetByID returns ErrQuestionNotFound when absent
func (s *QuestionService) GetByID(ctx context.Context, id string) (*model.Question, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// ListByDifficulty returns the learner view of every question in a tier
func (s *QuestionService) ListByDifficulty(ctx context.Context, difficulty string) ([]*model.PublicQuestion, error) {
	d, err := model.ParseDifficulty(difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	questions, err := s.repo.GetByDifficulty(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	out := make([]*model.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.Public())
	}
	return out, nil
}

// ListAll returns every stored question including answers
func (s *QuestionService) ListAll(ctx context.Context) ([]*model.Question, error) {
	questions, err := s.repo.GetAll(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if questions == nil {
		questions = []*model.Question{}
	}
	return questions, nil
}

// Delete removes a question
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !deleted {
		return ErrQuestionNotFound
	}
	return nil
}

// ImportSamples stores the built-in questions that are not present yet
func (s *QuestionService) ImportSamples(ctx context.Context) (*model.ImportReport, error) {
	report := &model.ImportReport{TotalAvailable: len(SampleQuestions)}
	for i := range SampleQuestions {
		q := SampleQuestions[i]
		q.Options = append([]string(nil), q.Options...)
		if err := s.importOne(ctx, &q, report); err != nil {
			return report, err
		}
	}
	log.Printf("sample import: %d imported, %d skipped", report.Imported, report.Skipped)
	return report, nil
}

// ImportOpenTDB pulls a batch from Open Trivia DB. Answers are unescaped and
// options shuffled; unknown difficulties become medium.
func (s *QuestionService) ImportOpenTDB(ctx context.Context) (*model.ImportReport, error) {
	if s.trivia == nil {
		return nil, fmt.Errorf("%w: trivia client not configured", ErrStoreUnavailable)
	}
	items, err := s.trivia.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch trivia questions: %w", err)
	}

	report := &model.ImportReport{TotalAvailable: len(items)}
	for _, item := range items {
		q := s.fromTrivia(item)
		if err := validateQuestion(q); err != nil {
			report.Failed++
			continue
		}
		if err := s.importOne(ctx, q, report); err != nil {
			return report, err
		}
	}
	log.Printf("trivia import: %d imported, %d skipped, %d failed of %d",
		report.Imported, report.Skipped, report.Failed, report.TotalAvailable)
	return report, nil
}

// importOne skips duplicates by question text. Only store errors abort the import.
func (s *QuestionService) importOne(ctx context.Context, q *model.Question, report *model.ImportReport) error {
	exists, err := s.repo.ExistsByText(ctx, q.QuestionText)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if exists {
		report.Skipped++
		return nil
	}
	if err := s.repo.Create(ctx, q); err != nil {
		log.Printf("import %q failed: %v", q.QuestionText, err)
		report.Failed++
		return nil
	}
	report.Imported++
	return nil
}

func (s *QuestionService) fromTrivia(item TriviaQuestion) *model.Question {
	correct := strings.TrimSpace(html.UnescapeString(item.CorrectAnswer))
	options := make([]string, 0, len(item.IncorrectAnswers)+1)
	for _, a := range item.IncorrectAnswers {
		options = append(options, strings.TrimSpace(html.UnescapeString(a)))
	}
	options = append(options, correct)
	s.shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	difficulty, err := model.ParseDifficulty(item.Difficulty)
	if err != nil {
		difficulty = model.DifficultyMedium
	}
	return &model.Question{
		QuestionText:  strings.TrimSpace(html.UnescapeString(item.Question)),
		Options:       options,
		CorrectAnswer: correct,
		Difficulty:    difficulty,
	}
}

func buildQuestion(req *model.CreateQuestionRequest) (*model.Question, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	options := make([]string, len(req.Options))
	for i, o := range req.Options {
		options[i] = strings.TrimSpace(o)
	}
	q := &model.Question{
		QuestionText:  strings.TrimSpace(req.QuestionText),
		Options:       options,
		CorrectAnswer: strings.TrimSpace(req.CorrectAnswer),
		Difficulty:    difficulty,
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func validateQuestion(q *model.Question) error {
	if q.QuestionText == "" {
		return fmt.Errorf("%w: question text is required", ErrInvalidInput)
	}
	if len(q.Options) != model.OptionCount {
		return fmt.Errorf("%w: exactly %d options are required", ErrInvalidInput, model.OptionCount)
	}
	found := false
	for _, o := range q.Options {
		if o == "" {
			return fmt.Errorf("%w: options must not be empty", ErrInvalidInput)
		}
		if strings.EqualFold(o, q.CorrectAnswer) {
			found = true
		}
	}
	if q.CorrectAnswer == "" || !found {
		return fmt.Errorf("%w: correct answer must be one of the options", ErrInvalidInput)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, model.ErrInvalidDifficulty)
	}
	return nil
}
