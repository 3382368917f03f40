package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type StoreConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type HandoffConfig struct {
	Contact         string
	ClearOnDispatch bool
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Session     SessionConfig
	Store       StoreConfig
	Gemini      GeminiConfig
	Handoff     HandoffConfig
}

func Load() (*Config, error) {
	// a missing .env is fine; real deployments set the environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SESSION_TTL", "72h")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("SQLITE_PATH", "albino.db")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("WHATSAPP_CONTACT", "5547997292357")
	v.SetDefault("HANDOFF_CLEAR_ON_DISPATCH", true)

	_ = v.ReadInConfig()

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			TTL:    ttl,
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			SQLitePath:    v.GetString("SQLITE_PATH"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Handoff: HandoffConfig{
			Contact:         v.GetString("WHATSAPP_CONTACT"),
			ClearOnDispatch: v.GetBool("HANDOFF_CLEAR_ON_DISPATCH"),
		},
	}

	if cfg.Environment == "development" && cfg.Session.Secret == "" {
		cfg.Session.Secret = "development-session-secret"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch cfg.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if cfg.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case StoreSQLite:
		if cfg.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
