package main

import (
	"adaptivequiz/internal/app"
	"adaptivequiz/internal/cache"
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/event"
	"adaptivequiz/internal/service"
	"adaptivequiz/internal/transport/rest"
	"adaptivequiz/internal/transport/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	deps, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open stores:", err)
	}
	defer deps.Close(context.Background())

	publisher, err := event.NewPublisher(cfg.Rabbit.URI, cfg.Rabbit.Exchange)
	if err != nil {
		// The quiz works without the bus; completed sessions just are not announced
		log.Printf("Warning: %v, event publishing is disabled", err)
		publisher, _ = event.NewPublisher("", "")
	}
	defer publisher.Close()

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.JWTSecret)
	questionSvc := deps.QuestionService()
	resultSvc := deps.ResultService()
	pred := deps.Predictor(ctx)
	log.Printf("Difficulty model: mediumCut=%.1f hardCut=%.1f", pred.Current().MediumCut, pred.Current().HardCut)

	quizSvc := service.NewQuizService(
		cache.NewSessionStore(),
		deps.QuestionRepo,
		resultSvc,
		pred,
		service.QuizOptions{SampleLimit: cfg.Quiz.SampleLimit},
	)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	quizSvc.SetBroadcaster(wsHub)
	if publisher.Enabled() {
		quizSvc.SetPublisher(publisher)
	}

	container := &rest.Container{
		AuthService:     authSvc,
		QuizService:     quizSvc,
		QuestionService: questionSvc,
		ResultService:   resultSvc,
		WSHub:           wsHub,
		CORS:            cfg.CORS,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s (store=%s)", cfg.HTTPPort, cfg.Store.Driver)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/quiz/start")
		log.Println("  POST /v1/quiz/submit-answer")
		log.Println("  POST /v1/quiz/next-question")
		log.Println("  POST /v1/quiz/end")
		log.Println("  GET  /v1/questions/by-difficulty/{difficulty}")
		log.Println("  GET  /v1/results/user/{userId}")
		log.Println("  WS   /v1/ws/sessions/{sessionId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Let in-flight retraining and publishing finish before the stores close
	quizSvc.Wait()
	log.Printf("Server exited with %d sessions still open", quizSvc.ActiveSessions())
}
