package service

import (
	"adaptivequiz/internal/cache"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/predictor"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/scoring"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const backgroundTimeout = 30 * time.Second

// QuizOptions tunes the engine. Zero values pick the defaults.
type QuizOptions struct {
	SampleLimit int
	// Intn overrides the random source used to choose among candidates
	Intn func(n int) int
}

// QuizService runs adaptive quiz sessions
type QuizService struct {
	sessions  cache.SessionStore
	questions repository.QuestionRepo
	results   repository.ResultRepo
	predictor predictor.Predictor
	picker    *questionPicker

	broadcaster Broadcaster
	publisher   EventPublisher

	background sync.WaitGroup
	retrainMu  sync.Mutex
}

// NewQuizService creates the session engine. results and pred may be nil.
func NewQuizService(
	sessions cache.SessionStore,
	questions repository.QuestionRepo,
	results repository.ResultRepo,
	pred predictor.Predictor,
	opts QuizOptions,
) *QuizService {
	return &QuizService{
		sessions:  sessions,
		questions: questions,
		results:   results,
		predictor: pred,
		picker:    newQuestionPicker(questions, opts.SampleLimit, opts.Intn),
	}
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *QuizService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetPublisher sets the message bus publisher
func (s *QuizService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// Start opens a session at the predicted tier and serves its first question
func (s *QuizService) Start(ctx context.Context, userID string, previousScore float64) (*model.StartQuizResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	difficulty := s.predict(previousScore)
	q, err := s.picker.pick(ctx, difficulty, nil)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrNoQuestionsAvailable
	}

	session := &model.QuizSession{
		ID:                  uuid.New().String(),
		UserID:              userID,
		CurrentDifficulty:   difficulty,
		AnsweredQuestionIDs: []string{},
		LastQuestionID:      q.ID,
		StartedAt:           time.Now().UTC(),
	}
	if _, err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	log.Printf("session %s started for user %s at %s", session.ID, userID, difficulty)

	return &model.StartQuizResponse{
		SessionID:      session.ID,
		Difficulty:     difficulty,
		Question:       q.Public(),
		TotalQuestions: model.SessionLength,
	}, nil
}

// SubmitAnswer grades an answer. Counters move on the following NextQuestion.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID, questionID, userAnswer string) (*model.AnswerResult, error) {
	entry, err := s.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.Unlock()

	if s.questions == nil {
		return nil, ErrStoreUnavailable
	}
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return nil, ErrMissingCorrectAnswer
	}

	grade := scoring.GradeAnswer(userAnswer, q.CorrectAnswer)
	entry.Session.LastQuestionID = questionID

	result := &model.AnswerResult{
		IsCorrect:     grade.IsCorrect,
		Score:         grade.Score,
		Message:       grade.Message,
		CorrectAnswer: q.CorrectAnswer,
	}
	s.broadcast(sessionID, EventAnswerGraded, result)
	return result, nil
}

// NextQuestion folds the previous answer into the tally and serves the next
// question, or finishes the session. previousScore is 1 for a correct answer.
func (s *QuizService) NextQuestion(ctx context.Context, sessionID string, previousScore int) (*model.NextQuestionResponse, error) {
	entry, err := s.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.Unlock()

	// Work on a copy so a failed fetch leaves the session untouched.
	next := entry.Session.Clone()
	next.QuestionsAnswered++
	if previousScore == 1 {
		next.CorrectAnswers++
	}
	if next.LastQuestionID != "" && !next.HasServed(next.LastQuestionID) {
		next.AnsweredQuestionIDs = append(next.AnsweredQuestionIDs, next.LastQuestionID)
	}
	next.LastQuestionID = ""

	if next.QuestionsAnswered >= model.SessionLength {
		entry.Session = next
		return s.terminal(ctx, entry), nil
	}

	next.CurrentDifficulty = scoring.SelectDifficulty(next.Accuracy())
	q, err := s.picker.pickWithFallback(ctx, next.CurrentDifficulty, next.HasServed)
	if err != nil {
		return nil, err
	}
	if q == nil {
		log.Printf("session %s ran out of questions after %d", sessionID, next.QuestionsAnswered)
		entry.Session = next
		return s.terminal(ctx, entry), nil
	}

	next.LastQuestionID = q.ID
	entry.Session = next

	resp := &model.NextQuestionResponse{
		Question:          q.Public(),
		Difficulty:        next.CurrentDifficulty,
		QuestionsAnswered: next.QuestionsAnswered,
		CorrectAnswers:    next.CorrectAnswers,
		CurrentAccuracy:   next.Accuracy(),
		TotalQuestions:    model.SessionLength,
	}
	s.broadcast(sessionID, EventQuestionServed, resp)
	return resp, nil
}

// End terminates a session, records its result and returns the summary
func (s *QuizService) End(ctx context.Context, sessionID string) (*model.SessionSummary, error) {
	entry, err := s.lock(sessionID)
	if err != nil {
		return nil, err
	}
	defer entry.Unlock()

	return s.finish(ctx, entry), nil
}

// Retrain refits the predictor from every stored result
func (s *QuizService) Retrain(ctx context.Context) error {
	if s.results == nil {
		return ErrStoreUnavailable
	}
	if s.predictor == nil {
		return nil
	}

	s.retrainMu.Lock()
	defer s.retrainMu.Unlock()

	results, err := s.results.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return s.predictor.Train(ctx, results)
}

// ActiveSessions is the number of live sessions
func (s *QuizService) ActiveSessions() int {
	return s.sessions.Len()
}

// HasSession reports whether id names a live session
func (s *QuizService) HasSession(id string) bool {
	_, ok := s.sessions.Get(id)
	return ok
}

// Wait blocks until background retrain and publish work has finished
func (s *QuizService) Wait() {
	s.background.Wait()
}

func (s *QuizService) predict(previousScore float64) model.Difficulty {
	if s.predictor == nil {
		return scoring.SelectDifficulty(previousScore)
	}
	return s.predictor.Predict(previousScore)
}

// lock returns the live entry for id with its lock held
func (s *QuizService) lock(id string) (*cache.SessionEntry, error) {
	entry, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.Lock()
	if entry.Closed {
		entry.Unlock()
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

func (s *QuizService) terminal(ctx context.Context, entry *cache.SessionEntry) *model.NextQuestionResponse {
	summary := s.finish(ctx, entry)
	return &model.NextQuestionResponse{
		Difficulty:        summary.FinalDifficulty,
		QuestionsAnswered: summary.QuestionsAnswered,
		CorrectAnswers:    summary.CorrectAnswers,
		CurrentAccuracy:   summary.FinalScore,
		TotalQuestions:    model.SessionLength,
		SessionCompleted:  true,
		Summary:           summary,
	}
}

// finish scores the session, records the result and removes the session.
// Persistence, retraining and publishing never fail the termination.
// Caller holds the entry lock.
func (s *QuizService) finish(ctx context.Context, entry *cache.SessionEntry) *model.SessionSummary {
	session := entry.Session
	score := scoring.FinalScore(session.CorrectAnswers, session.QuestionsAnswered)

	summary := &model.SessionSummary{
		SessionID:         session.ID,
		UserID:            session.UserID,
		FinalScore:        score,
		QuestionsAnswered: session.QuestionsAnswered,
		CorrectAnswers:    session.CorrectAnswers,
		FinalDifficulty:   session.CurrentDifficulty,
		Feedback:          scoring.Feedback(score),
		NextDifficulty:    scoring.SelectDifficulty(score),
		SessionCompleted:  true,
	}

	session.IsCompleted = true
	entry.Closed = true

	if s.results == nil {
		log.Printf("session %s: no result store, result not saved", session.ID)
	} else {
		id, err := s.results.Create(ctx, &model.Result{
			UserID:            session.UserID,
			TotalScore:        score,
			QuestionsAnswered: session.QuestionsAnswered,
			CorrectAnswers:    session.CorrectAnswers,
			FinalDifficulty:   session.CurrentDifficulty,
			Feedback:          summary.Feedback,
			NextDifficulty:    summary.NextDifficulty,
			Timestamp:         time.Now().UTC(),
		})
		if err != nil {
			log.Printf("session %s: result persist failed: %v", session.ID, err)
		} else {
			summary.ResultID = id
		}
	}

	s.sessions.Delete(session.ID)
	log.Printf("session %s completed: %d/%d (%.1f)", session.ID, session.CorrectAnswers, session.QuestionsAnswered, score)

	s.broadcast(session.ID, EventSessionCompleted, summary)
	if s.broadcaster != nil {
		s.broadcaster.DisconnectSession(session.ID)
	}

	if s.results != nil && s.predictor != nil {
		s.goBackground(func(bg context.Context) {
			if err := s.Retrain(bg); err != nil {
				log.Printf("background retrain failed: %v", err)
			}
		})
	}
	if s.publisher != nil {
		published := *summary
		s.goBackground(func(bg context.Context) {
			if err := s.publisher.PublishSessionCompleted(bg, &published); err != nil {
				log.Printf("publish session %s failed: %v", published.SessionID, err)
			}
		})
	}

	return summary
}

func (s *QuizService) goBackground(fn func(ctx context.Context)) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		fn(ctx)
	}()
}

func (s *QuizService) broadcast(sessionID, msgType string, payload interface{}) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(sessionID, msgType, payload)
	}
}
