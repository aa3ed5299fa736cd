package config

import (
	"os"
	"strconv"
	"strings"
)

// Database drivers understood by db.Open.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort          string
	DBDriver            string
	MySQLDSN            string
	SQLitePath          string
	RedisAddr           string
	RedisDB             int
	RedisPass           string
	SessionCookieSecure bool
	LoginMaxAttempts    int
	ContactMaxPerHour   int
	LogLevel            string
	ResetDB             bool
	SwaggerHost         string
	TrustProxy          bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		MySQLDSN:            getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/portfolio?charset=utf8mb4&parseTime=True&loc=UTC"),
		SQLitePath:          getEnv("SQLITE_PATH", "portfolio.db"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		SessionCookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		LoginMaxAttempts:    getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		ContactMaxPerHour:   getEnvInt("CONTACT_MAX_PER_HOUR", 5),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		ResetDB:             getEnvBool("RESET_DB", false),
		SwaggerHost:         os.Getenv("SWAGGER_HOST"),
		TrustProxy:          getEnvBool("TRUST_PROXY", false),
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
