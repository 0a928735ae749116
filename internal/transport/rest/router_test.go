package rest

import (
	"adaptivequiz/internal/cache"
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/predictor"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/transport/ws"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dbSeq atomic.Int64

type testAPI struct {
	t       *testing.T
	handler http.Handler
	quiz    *service.QuizService
	token   string
}

func newTestAPI(t *testing.T) *testAPI {
	db, err := repository.OpenSQLite(fmt.Sprintf("file:resttest%d?mode=memory&cache=shared", dbSeq.Add(1)))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	questionRepo := repository.NewSQLiteQuestionRepo(db)
	resultSvc := service.NewResultService(repository.NewSQLiteResultRepo(db), nil)
	quizSvc := service.NewQuizService(cache.NewSessionStore(), questionRepo, resultSvc, predictor.NewThresholdModel(nil), service.QuizOptions{})
	t.Cleanup(quizSvc.Wait)

	hub := ws.NewHub()
	quizSvc.SetBroadcaster(hub)

	return &testAPI{
		t: t,
		handler: NewRouter(&Container{
			AuthService:     service.NewAuthService("admin", "secret", "test-secret"),
			QuizService:     quizSvc,
			QuestionService: service.NewQuestionService(questionRepo, nil),
			ResultService:   resultSvc,
			WSHub:           hub,
			CORS:            config.Default().CORS,
		}),
		quiz: quizSvc,
	}
}

func (a *testAPI) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) login() {
	rec := a.do("POST", "/v1/auth/login", model.LoginRequest{Username: "admin", Password: "secret"})
	require.Equal(a.t, http.StatusOK, rec.Code)
	var resp model.LoginResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	a.token = resp.Token
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndCORS(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = api.do("OPTIONS", "/v1/quiz/start", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do("POST", "/v1/questions/import-samples", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do("POST", "/v1/auth/login", model.LoginRequest{Username: "admin", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	api.token = "not-a-jwt"
	rec = api.do("GET", "/v1/questions", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	api.login()
	rec = api.do("GET", "/v1/questions", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestQuizFlow(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	rec := api.do("POST", "/v1/questions/import-samples", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	report := decodeBody[model.ImportReport](t, rec)
	assert.Equal(t, 5, report.Imported)

	rec = api.do("POST", "/v1/quiz/start", model.StartQuizRequest{UserID: "u1", PreviousScore: 10})
	require.Equal(t, http.StatusOK, rec.Code)
	start := decodeBody[model.StartQuizResponse](t, rec)
	assert.Equal(t, model.DifficultyEasy, start.Difficulty)
	assert.Equal(t, model.SessionLength, start.TotalQuestions)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	served, ok := raw["question"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, served, "correctAnswer", "answer key must not reach the learner")
	assert.Contains(t, served, "options")
	assert.True(t, api.quiz.HasSession(start.SessionID))

	rec = api.do("GET", "/v1/questions/"+start.Question.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	full := decodeBody[model.Question](t, rec)

	rec = api.do("POST", "/v1/quiz/submit-answer", model.SubmitAnswerRequest{
		SessionID:  start.SessionID,
		QuestionID: start.Question.ID,
		UserAnswer: full.CorrectAnswer,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	graded := decodeBody[model.AnswerResult](t, rec)
	assert.True(t, graded.IsCorrect)
	assert.Equal(t, 1, graded.Score)

	rec = api.do("POST", "/v1/quiz/next-question", model.NextQuestionRequest{SessionID: start.SessionID, PreviousScore: graded.Score})
	require.Equal(t, http.StatusOK, rec.Code)
	next := decodeBody[model.NextQuestionResponse](t, rec)
	assert.False(t, next.SessionCompleted)
	assert.Equal(t, 1, next.QuestionsAnswered)
	assert.Equal(t, 1, next.CorrectAnswers)
	assert.Equal(t, model.DifficultyHard, next.Difficulty)
	require.NotNil(t, next.Question)
	assert.NotEqual(t, start.Question.ID, next.Question.ID)

	rec = api.do("POST", "/v1/quiz/end", model.EndQuizRequest{SessionID: start.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[model.SessionSummary](t, rec)
	assert.True(t, summary.SessionCompleted)
	assert.Equal(t, "u1", summary.UserID)
	assert.Equal(t, 100.0, summary.FinalScore)
	assert.False(t, api.quiz.HasSession(start.SessionID))

	rec = api.do("POST", "/v1/quiz/next-question", model.NextQuestionRequest{SessionID: start.SessionID})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	api.token = ""
	rec = api.do("GET", "/v1/results/user/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeBody[[]*model.Result](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].TotalScore)
}

func TestErrorMapping(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do("POST", "/v1/quiz/start", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", "/v1/quiz/start", model.StartQuizRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", "/v1/quiz/start", model.StartQuizRequest{UserID: "u1"})
	assert.Equal(t, http.StatusNotFound, rec.Code, "empty bank")

	rec = api.do("POST", "/v1/quiz/submit-answer", model.SubmitAnswerRequest{SessionID: "missing", QuestionID: "q"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do("POST", "/v1/quiz/submit-answer", model.SubmitAnswerRequest{SessionID: "missing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("POST", "/v1/quiz/end", model.EndQuizRequest{SessionID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do("GET", "/v1/questions/by-difficulty/impossible", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do("GET", "/v1/questions/by-difficulty/EASY", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do("GET", "/v1/ws/sessions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
