package service

import (
	"adaptivequiz/internal/model"
	"context"
	"errors"
	"fmt"
	"sync"
)

var errBoom = errors.New("boom")

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions []*model.Question
	getErr    error
	listErr   error
	createErr error
	allLimits []int
}

func newFakeQuestionRepo(qs ...*model.Question) *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: qs}
}

func q(id string, d model.Difficulty) *model.Question {
	return &model.Question{
		ID:            id,
		QuestionText:  "question " + id,
		Options:       []string{"right", "wrong 1", "wrong 2", "wrong 3"},
		CorrectAnswer: "right",
		Difficulty:    d,
	}
}

func bank(prefix string, d model.Difficulty, n int) []*model.Question {
	out := make([]*model.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, q(fmt.Sprintf("%s%d", prefix, i+1), d))
	}
	return out
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if question.ID == "" {
		question.ID = fmt.Sprintf("gen%d", len(r.questions)+1)
	}
	r.questions = append(r.questions, question)
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, nil
}

func (r *fakeQuestionRepo) GetByDifficulty(ctx context.Context, d model.Difficulty) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*model.Question
	for _, q := range r.questions {
		if q.Difficulty == d {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) GetAll(ctx context.Context, limit int) ([]*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allLimits = append(r.allLimits, limit)
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]*model.Question(nil), r.questions...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, q := range r.questions {
		if q.ID == id {
			r.questions = append(r.questions[:i], r.questions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeQuestionRepo) ExistsByText(ctx context.Context, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions {
		if q.QuestionText == text {
			return true, nil
		}
	}
	return false, nil
}

type fakeResultRepo struct {
	mu        sync.Mutex
	results   []*model.Result
	createErr error
	listErr   error
}

func (r *fakeResultRepo) Create(ctx context.Context, res *model.Result) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return "", r.createErr
	}
	res.ID = fmt.Sprintf("r%d", len(r.results)+1)
	r.results = append(r.results, res)
	return res.ID, nil
}

func (r *fakeResultRepo) GetAll(ctx context.Context) ([]*model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]*model.Result(nil), r.results...), nil
}

func (r *fakeResultRepo) GetByUser(ctx context.Context, userID string) ([]*model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*model.Result
	for _, res := range r.results {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

type fakePredictor struct {
	mu       sync.Mutex
	tier     model.Difficulty
	trained  int
	trainErr error
}

func (p *fakePredictor) Predict(float64) model.Difficulty { return p.tier }

func (p *fakePredictor) Train(ctx context.Context, results []*model.Result) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trained++
	return p.trainErr
}

func (p *fakePredictor) trainCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.trained
}

type sentEvent struct {
	sessionID string
	msgType   string
	payload   interface{}
}

type fakeBroadcaster struct {
	mu           sync.Mutex
	events       []sentEvent
	disconnected []string
}

func (b *fakeBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, sentEvent{sessionID, msgType, payload})
}

func (b *fakeBroadcaster) DisconnectSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, sessionID)
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = e.msgType
	}
	return out
}

type fakePublisher struct {
	mu        sync.Mutex
	summaries []*model.SessionSummary
	err       error
}

func (p *fakePublisher) PublishSessionCompleted(ctx context.Context, s *model.SessionSummary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.summaries = append(p.summaries, s)
	return p.err
}
