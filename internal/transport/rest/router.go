package rest

import (
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/transport/rest/handler"
	"adaptivequiz/internal/transport/rest/middleware"
	"adaptivequiz/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	QuizService     *service.QuizService
	QuestionService *service.QuestionService
	ResultService   *service.ResultService
	WSHub           *ws.Hub
	CORS            config.CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	quizHandler := handler.NewQuizHandler(c.QuizService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	resultHandler := handler.NewResultHandler(c.ResultService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	v1.HandleFunc("/quiz/start", quizHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quiz/submit-answer", quizHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quiz/next-question", quizHandler.NextQuestion).Methods("POST", "OPTIONS")
	v1.HandleFunc("/quiz/end", quizHandler.End).Methods("POST", "OPTIONS")

	v1.HandleFunc("/questions/by-difficulty/{difficulty}", questionHandler.ListByDifficulty).Methods("GET", "OPTIONS")
	v1.HandleFunc("/results/user/{userId}", resultHandler.ListByUser).Methods("GET", "OPTIONS")

	// WebSocket stream of one session's events
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.QuizService)
		v1.HandleFunc("/ws/sessions/{sessionId}", wsHandler.SessionWS).Methods("GET")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes
	admin := v1.NewRoute().Subrouter()
	admin.Use(authMW.RequireAdmin)

	admin.HandleFunc("/quiz/retrain-model", quizHandler.Retrain).Methods("POST", "OPTIONS")

	admin.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/import-samples", questionHandler.ImportSamples).Methods("POST", "OPTIONS")
	admin.HandleFunc("/questions/import-opentdb", questionHandler.ImportOpenTDB).Methods("POST", "OPTIONS")
	admin.HandleFunc("/questions/{id}", questionHandler.Get).Methods("GET", "OPTIONS")
	admin.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")

	admin.HandleFunc("/results", resultHandler.Create).Methods("POST", "OPTIONS")
	admin.HandleFunc("/results", resultHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	allowedOrigins := cfg.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	allowedMethods := cfg.AllowedMethods
	if allowedMethods == "" {
		allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	allowedHeaders := cfg.AllowedHeaders
	if allowedHeaders == "" {
		allowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
