package handler

import (
	"adaptivequiz/internal/model"
	"adaptivequiz/internal/service"
	"net/http"

	"github.com/gorilla/mux"
)

// ResultHandler handles result endpoints
type ResultHandler struct {
	resultSvc *service.ResultService
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultSvc *service.ResultService) *ResultHandler {
	return &ResultHandler{resultSvc: resultSvc}
}

// ListByUser handles GET /v1/results/user/{userId}
func (h *ResultHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultSvc.GetByUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Create handles POST /v1/results
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var res model.Result
	if err := decode(r, &res); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res.ID = ""

	id, err := h.resultSvc.Create(r.Context(), &res)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// List handles GET /v1/results
func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.resultSvc.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
