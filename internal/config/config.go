package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"eduquiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	AI       AI
	Quiz     Quiz
	CORS     CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// DSN renders the connection string used by pgxpool and goose.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}

// Redis holds quiz session storage configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing and auth.
type Security struct {
	JWTSecret       string        `env:"JWT_SECRET,notEmpty"`
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

// AI configures the question provider. An empty or placeholder APIKey puts
// generation in fallback mode; it is not a startup error.
type AI struct {
	Provider    string        `env:"AI_PROVIDER" envDefault:"groq"`
	APIKey      string        `env:"AI_API_KEY" envDefault:""`
	Model       string        `env:"AI_MODEL" envDefault:""`
	BaseURL     string        `env:"AI_BASE_URL" envDefault:""`
	Temperature float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int           `env:"AI_MAX_TOKENS" envDefault:"2048"`
	BatchSize   int           `env:"AI_BATCH_SIZE" envDefault:"1"`
	HTTPTimeout time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"30s"`
	// Seed fixes the fallback/variation random source; 0 seeds from entropy.
	Seed uint64 `env:"AI_SEED" envDefault:"0"`
}

// Quiz groups quiz session defaults.
type Quiz struct {
	DefaultQuestionCount int           `env:"DEFAULT_QUESTION_COUNT" envDefault:"5"`
	MaxQuestionCount     int           `env:"MAX_QUESTION_COUNT" envDefault:"20"`
	SessionTTL           time.Duration `env:"QUIZ_SESSION_TTL" envDefault:"2h"`
	HistoryLimit         int           `env:"HISTORY_LIMIT" envDefault:"50"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadAI parses only the provider settings. Tools that never touch Postgres or
// Redis use it so those variables stay optional for them.
func LoadAI() (AI, error) {
	var cfg AI
	if err := env.ParseWithOptions(&cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return AI{}, fmt.Errorf("parse ai config: %w", err)
	}
	return cfg, nil
}

// LoadPostgres parses only the database settings, for the migrator.
func LoadPostgres() (Postgres, error) {
	var cfg Postgres
	if err := env.ParseWithOptions(&cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}
