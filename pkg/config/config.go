package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	BackendStorageMemory   = "memory"
	BackendStoragePostgres = "postgres"
)

type Config struct {
	Env  string
	Port int

	EventsAPI     EventsAPIConfig
	Display       DisplayConfig
	Notifications NotificationConfig
	Session       SessionConfig
	Redis         RedisConfig
	CORS          CORSConfig
	Log           LogConfig
	Metrics       MetricsConfig
	Backend       BackendConfig
	Database      DatabaseConfig
}

// EventsAPIConfig points the UI at the events REST backend. Every endpoint is
// resolved against the single BaseURL.
type EventsAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DisplayConfig controls how timestamps are rendered on pages.
type DisplayConfig struct {
	TimeZone string
}

// NotificationConfig controls flashed user notifications.
type NotificationConfig struct {
	Duration time.Duration
}

// SessionConfig selects where per-session page state lives.
type SessionConfig struct {
	Store      string
	TTL        time.Duration
	CookieName string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

// BackendConfig configures the reference events API server.
type BackendConfig struct {
	Port     int
	Storage  string
	SeedFile string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.EventsAPI = EventsAPIConfig{
		BaseURL: strings.TrimRight(v.GetString("EVENTS_API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("EVENTS_API_TIMEOUT"), 10*time.Second),
	}

	cfg.Display = DisplayConfig{TimeZone: v.GetString("DISPLAY_TIMEZONE")}

	cfg.Notifications = NotificationConfig{
		Duration: parseDuration(v.GetString("NOTIFICATION_DURATION"), 3*time.Second),
	}

	cfg.Session = SessionConfig{
		Store:      strings.ToLower(v.GetString("SESSION_STORE")),
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
		CookieName: v.GetString("SESSION_COOKIE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	cfg.Backend = BackendConfig{
		Port:     v.GetInt("BACKEND_PORT"),
		Storage:  strings.ToLower(v.GetString("BACKEND_STORAGE")),
		SeedFile: v.GetString("BACKEND_SEED_FILE"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("EVENTS_API_BASE_URL", "http://localhost:3000")
	v.SetDefault("EVENTS_API_TIMEOUT", "10s")
	v.SetDefault("DISPLAY_TIMEZONE", "Europe/Berlin")
	v.SetDefault("NOTIFICATION_DURATION", "3s")

	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_COOKIE", "event_board_session")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ENABLE_METRICS", true)

	v.SetDefault("BACKEND_PORT", 3000)
	v.SetDefault("BACKEND_STORAGE", BackendStorageMemory)
	v.SetDefault("BACKEND_SEED_FILE", "./db.json")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "events")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
