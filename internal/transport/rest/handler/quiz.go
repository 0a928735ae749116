package handler

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/transport/rest/middleware"
	"log"
	"net/http"
)

// QuizHandler exposes the session engine
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Start handles POST /v1/quiz/start
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartQuizRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.quizSvc.Start(r.Context(), req.UserID, req.PreviousScore)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /v1/quiz/submit-answer
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAnswerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId and questionId are required")
		return
	}

	resp, err := h.quizSvc.SubmitAnswer(r.Context(), req.SessionID, req.QuestionID, req.UserAnswer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// NextQuestion handles POST /v1/quiz/next-question
func (h *QuizHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.NextQuestionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	resp, err := h.quizSvc.NextQuestion(r.Context(), req.SessionID, req.PreviousScore)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// End handles POST /v1/quiz/end
func (h *QuizHandler) End(w http.ResponseWriter, r *http.Request) {
	var req model.EndQuizRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	resp, err := h.quizSvc.End(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Retrain handles POST /v1/quiz/retrain-model
func (h *QuizHandler) Retrain(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.Retrain(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("admin %s retrained the difficulty model", middleware.GetAdminID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "model retrained"})
}
