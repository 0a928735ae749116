package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	HTTPPort string       `yaml:"http_port"`
	Store    StoreConfig  `yaml:"store"`
	Redis    RedisConfig  `yaml:"redis"`
	Rabbit   RabbitConfig `yaml:"rabbitmq"`
	Auth     AuthConfig   `yaml:"auth"`
	CORS     CORSConfig   `yaml:"cors"`
	Quiz     QuizConfig   `yaml:"quiz"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	SQLitePath    string `yaml:"sqlite_path"`
}

// RedisConfig is optional. An empty address disables model persistence and
// result caching.
type RedisConfig struct {
	Addr             string `yaml:"addr"`
	Prefix           string `yaml:"prefix"`
	ResultTTLSeconds int    `yaml:"result_ttl_seconds"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type RabbitConfig struct {
	URI      string `yaml:"uri"`
	Exchange string `yaml:"exchange"`
}

func (c RabbitConfig) Enabled() bool {
	return c.URI != ""
}

type AuthConfig struct {
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	JWTSecret     string `yaml:"jwt_secret"`
}

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins"`
	AllowedMethods string `yaml:"allowed_methods"`
	AllowedHeaders string `yaml:"allowed_headers"`
}

type QuizConfig struct {
	SampleLimit int    `yaml:"sample_limit"`
	OpenTDBURL  string `yaml:"opentdb_url"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		HTTPPort: "8080",
		Store: StoreConfig{
			Driver:        DriverMongo,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "adaptivequiz",
			SQLitePath:    "data/quiz.db",
		},
		Redis: RedisConfig{
			Prefix:           "quiz",
			ResultTTLSeconds: 600,
		},
		Rabbit: RabbitConfig{
			Exchange: "quiz.events",
		},
		Auth: AuthConfig{
			AdminUsername: "admin",
			AdminPassword: "password123",
			JWTSecret:     "super-secret-key-change-in-production",
		},
		CORS: CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowedHeaders: "Content-Type, Authorization",
		},
		Quiz: QuizConfig{
			SampleLimit: 100,
			OpenTDBURL:  "https://opentdb.com/api.php?amount=50&category=18&type=multiple",
		},
	}
}

// Load reads .env, then the YAML file named by QUIZ_CONFIG if set, then
// environment variables. Later sources win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("QUIZ_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnv("PORT", c.HTTPPort)

	c.Store.Driver = strings.ToLower(getEnv("STORE_DRIVER", c.Store.Driver))
	c.Store.MongoURI = getEnv("MONGO_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = getEnv("MONGO_DATABASE", c.Store.MongoDatabase)
	c.Store.SQLitePath = getEnv("SQLITE_PATH", c.Store.SQLitePath)

	// Remove redis:// prefix if present
	c.Redis.Addr = strings.TrimPrefix(getEnv("REDIS_URI", c.Redis.Addr), "redis://")
	c.Redis.Prefix = getEnv("REDIS_PREFIX", c.Redis.Prefix)
	c.Redis.ResultTTLSeconds = getEnvInt("RESULT_CACHE_TTL_SECONDS", c.Redis.ResultTTLSeconds)

	c.Rabbit.URI = getEnv("RABBITMQ_URI", c.Rabbit.URI)
	c.Rabbit.Exchange = getEnv("RABBITMQ_EXCHANGE", c.Rabbit.Exchange)

	c.Auth.AdminUsername = getEnv("ADMIN_USERNAME", c.Auth.AdminUsername)
	c.Auth.AdminPassword = getEnv("ADMIN_PASSWORD", c.Auth.AdminPassword)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)

	c.CORS.AllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = getEnv("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = getEnv("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)

	c.Quiz.SampleLimit = getEnvInt("QUIZ_SAMPLE_LIMIT", c.Quiz.SampleLimit)
	c.Quiz.OpenTDBURL = getEnv("OPENTDB_URL", c.Quiz.OpenTDBURL)
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("config: mongo_uri is required for the mongo driver")
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("config: sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Quiz.SampleLimit <= 0 {
		return errors.New("config: quiz sample_limit must be positive")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: jwt_secret must not be empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
