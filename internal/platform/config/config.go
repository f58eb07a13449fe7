package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of STORE_DRIVER.
const (
	StoreDriverBadger   = "badger"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	JWTSecret string
	JWTIssuer string

	// Box storage
	StoreDriver   string
	StoreKey      string // Key under which the serialized collection is kept
	BadgerPath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Box change events, disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string

	RateLimit          string // ulule/limiter format, e.g. "120-M"
	CORSAllowedOrigins []string
	CurrencyCode       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "class-fund-app")
	v.SetDefault("STORE_DRIVER", StoreDriverBadger)
	v.SetDefault("STORE_KEY", "boxes")
	v.SetDefault("BADGER_PATH", "./data/boxes")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "box_events")
	v.SetDefault("RATE_LIMIT", "120-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:19006")
	v.SetDefault("CURRENCY_CODE", "BRL")

	v.AutomaticEnv()

	cfg := &Config{
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTIssuer:     v.GetString("JWT_ISSUER"),
		StoreDriver:   strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		StoreKey:      v.GetString("STORE_KEY"),
		BadgerPath:    v.GetString("BADGER_PATH"),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		KafkaBrokers:  splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:    v.GetString("KAFKA_TOPIC"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		CurrencyCode:  strings.ToUpper(v.GetString("CURRENCY_CODE")),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	levelStr := v.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", levelStr)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.StoreKey == "" {
		cfg.StoreKey = "boxes"
		log.Printf("Warning: STORE_KEY not set. Defaulting to %s.\n", cfg.StoreKey)
	}

	if cfg.CurrencyCode == "" {
		cfg.CurrencyCode = "BRL"
	}

	switch cfg.StoreDriver {
	case StoreDriverBadger:
		if cfg.BadgerPath == "" {
			return nil, fmt.Errorf("BADGER_PATH is required when STORE_DRIVER is %s", StoreDriverBadger)
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORE_DRIVER is %s", StoreDriverPostgres)
		}
	case StoreDriverRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when STORE_DRIVER is %s", StoreDriverRedis)
		}
	case StoreDriverMemory:
		log.Println("Warning: STORE_DRIVER is memory. Boxes will not survive a restart.")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
