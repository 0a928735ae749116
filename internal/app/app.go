package app

import (
	"adaptivequiz/internal/cache"
	"adaptivequiz/internal/config"
	"adaptivequiz/internal/predictor"
	"adaptivequiz/internal/repository"
	"adaptivequiz/internal/service"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// App holds the storage layer shared by the server and the seed CLI
type App struct {
	Config       *config.Config
	QuestionRepo repository.QuestionRepo
	ResultRepo   repository.ResultRepo
	ModelCache   cache.ModelCache
	ResultCache  cache.ResultCache

	closers []func(ctx context.Context) error
}

// New connects the configured stores. Redis is optional and skipped when no
// address is set.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if err := a.openStore(ctx); err != nil {
		a.Close(ctx)
		return nil, err
	}

	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := rdb.Ping(pingCtx).Result(); err != nil {
			rdb.Close()
			a.Close(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Println("Connected to Redis")

		a.ModelCache = cache.NewModelCache(rdb, cfg.Redis.Prefix)
		a.ResultCache = cache.NewResultCache(rdb, cfg.Redis.Prefix, time.Duration(cfg.Redis.ResultTTLSeconds)*time.Second)
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	} else {
		log.Println("Warning: REDIS_URI not set, model persistence and result caching disabled")
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.Store.Driver {
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.Store.MongoURI))
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return fmt.Errorf("ping mongo: %w", err)
		}
		log.Println("Connected to MongoDB")

		db := client.Database(a.Config.Store.MongoDatabase)
		if err := repository.EnsureQuestionIndexes(ctx, db); err != nil {
			log.Printf("Warning: failed to create question indexes: %v", err)
		}
		a.QuestionRepo = repository.NewQuestionRepo(db)
		a.ResultRepo = repository.NewResultRepo(db)

	case config.DriverSQLite:
		db, err := repository.OpenSQLite(a.Config.Store.SQLitePath)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		log.Printf("Opened SQLite store at %s", a.Config.Store.SQLitePath)

		a.QuestionRepo = repository.NewSQLiteQuestionRepo(db)
		a.ResultRepo = repository.NewSQLiteResultRepo(db)

	default:
		return fmt.Errorf("unknown store driver %q", a.Config.Store.Driver)
	}
	return nil
}

// Predictor builds the difficulty model, restoring saved cut points when
// Redis holds them
func (a *App) Predictor(ctx context.Context) *predictor.ThresholdModel {
	var store predictor.ModelStore
	if a.ModelCache != nil {
		store = a.ModelCache
	}
	pred := predictor.NewThresholdModel(store)
	if err := pred.LoadSaved(ctx); err != nil {
		log.Printf("Warning: failed to load saved difficulty model: %v", err)
	}
	return pred
}

// ResultService wraps the result store with the optional per-user cache
func (a *App) ResultService() *service.ResultService {
	return service.NewResultService(a.ResultRepo, a.ResultCache)
}

// QuestionService wires the question store to the OpenTDB client
func (a *App) QuestionService() *service.QuestionService {
	return service.NewQuestionService(a.QuestionRepo, service.NewTriviaClient(a.Config.Quiz.OpenTDBURL))
}

// Close releases every connection in reverse order of opening
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Printf("close: %v", err)
		}
	}
	a.closers = nil
}
