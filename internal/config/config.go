package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	SessionStore  string
	SessionSecret string
	SessionTTL    time.Duration
	SessionSecure bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	// CatalogAdmins lists the login handles allowed to mutate the catalog.
	// Empty keeps the catalog routes open.
	CatalogAdmins []string

	LogLevel    string
	LogFormat   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("PORT", "5000"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "mi_tienda.db"),
		ResetDB:       getEnvBool("RESET_DB", false),
		SessionStore:  getEnv("SESSION_STORE", "memory"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionSecure: getEnvBool("SESSION_SECURE", false),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		CatalogAdmins: getEnvList("CATALOG_ADMINS"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
