package handler

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/transport/rest/middleware"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// QuestionHandler handles question endpoints
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// ListByDifficulty handles GET /v1/questions/by-difficulty/{difficulty}
func (h *QuestionHandler) ListByDifficulty(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.ListByDifficulty(r.Context(), mux.Vars(r)["difficulty"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Create handles POST /v1/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateQuestionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.questionSvc.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// List handles GET /v1/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionSvc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Get handles GET /v1/questions/{id}
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.questionSvc.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Delete handles DELETE /v1/questions/{id}
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.questionSvc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("admin %s deleted question %s", middleware.GetAdminID(r.Context()), id)
	w.WriteHeader(http.StatusNoContent)
}

// ImportSamples handles POST /v1/questions/import-samples
func (h *QuestionHandler) ImportSamples(w http.ResponseWriter, r *http.Request) {
	report, err := h.questionSvc.ImportSamples(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("admin %s imported samples: %d new", middleware.GetAdminID(r.Context()), report.Imported)
	writeJSON(w, http.StatusOK, report)
}

// ImportOpenTDB handles POST /v1/questions/import-opentdb
func (h *QuestionHandler) ImportOpenTDB(w http.ResponseWriter, r *http.Request) {
	report, err := h.questionSvc.ImportOpenTDB(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	log.Printf("admin %s imported from OpenTDB: %d new", middleware.GetAdminID(r.Context()), report.Imported)
	writeJSON(w, http.StatusOK, report)
}
