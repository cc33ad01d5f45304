package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/task-manager-api/modules/api"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/cache"
	"github.com/example/task-manager-api/modules/database"
)

// Config is the process configuration read from the environment.
type Config struct {
	HTTPPort        int
	Database        database.Config
	Tokens          auth.TokenConfig
	Cache           cache.Config
	LoginRateLimit  int
	LoginRateWindow time.Duration
	AllowOrigins    string
	ShutdownTimeout time.Duration
}

func loadConfig() Config {
	tokens := auth.DefaultTokenConfig()
	tokens.SecretKey = getEnv("JWT_SECRET_KEY", "")
	tokens.Issuer = getEnv("JWT_ISSUER", tokens.Issuer)
	tokens.TTL = getEnvDuration("JWT_TTL", tokens.TTL)
	if tokens.SecretKey == "" {
		log.Println("Warning: JWT_SECRET_KEY is not set, using an insecure development key")
		tokens.SecretKey = "task-manager-development-secret"
	}

	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 3000),
		Database: database.Config{
			Driver: getEnv("DB_DRIVER", database.DriverSQLite),
			DSN:    getEnv("DATABASE_URL", "task_manager.db"),
			Debug:  getEnvBool("DB_DEBUG", false),
		},
		Tokens: tokens,
		Cache: cache.Config{
			Addr:   getEnv("REDIS_ADDR", ""),
			Prefix: getEnv("CACHE_PREFIX", "task-manager:"),
			TTL:    getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		LoginRateLimit:  getEnvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: getEnvDuration("LOGIN_RATE_WINDOW", time.Minute),
		AllowOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "*"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// APIConfig derives the HTTP module settings.
func (c Config) APIConfig() api.Config {
	return api.Config{
		Addr:            ":" + strconv.Itoa(c.HTTPPort),
		AllowOrigins:    c.AllowOrigins,
		LoginRateLimit:  c.LoginRateLimit,
		LoginRateWindow: c.LoginRateWindow,
	}
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return defaultValue
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
