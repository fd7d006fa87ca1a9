package config

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	AppURL                 string
	StorageDriver          string
	DatabaseDSN            string
	RedisAddr              string
	RedisKeyPrefix         string
	RedisChangesChannel    string
	TasksKey               string
	SessionKey             string
	UsersKey               string
	RateLimit              int
	ShutdownTimeoutSeconds int
	LogLevel               string
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		StorageDriver:          getEnv("STORAGE_DRIVER", DriverSQLite),
		DatabaseDSN:            getEnv("DATABASE_DSN", "taskboard.db"),
		RedisAddr:              fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "taskboard:"),
		RedisChangesChannel:    getEnv("REDIS_CHANGES_CHANNEL", "taskboard:changes"),
		TasksKey:               getEnv("TASKS_KEY", "tasks"),
		SessionKey:             getEnv("SESSION_KEY", "user"),
		UsersKey:               getEnv("USERS_KEY", "users"),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
	}

	if debug, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && debug {
		cfg.LogLevel = "debug"
	}

	if err := Validate(cfg); err != nil {
		log.Fatal(err)
	}
	return cfg
}

// Validate reports the first setting that cannot be used.
func Validate(cfg Config) error {
	if cfg.AppURL == "" {
		return fmt.Errorf("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, redis (got %q)", cfg.StorageDriver)
	}
	if cfg.StorageDriver == DriverSQLite && cfg.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN must not be empty")
	}
	if cfg.StorageDriver == DriverRedis && cfg.RedisChangesChannel == "" {
		return fmt.Errorf("REDIS_CHANGES_CHANNEL must not be empty")
	}
	if cfg.TasksKey == "" || cfg.SessionKey == "" || cfg.UsersKey == "" {
		return fmt.Errorf("TASKS_KEY, SESSION_KEY and USERS_KEY must not be empty")
	}
	if cfg.TasksKey == cfg.SessionKey || cfg.TasksKey == cfg.UsersKey || cfg.SessionKey == cfg.UsersKey {
		return fmt.Errorf("TASKS_KEY, SESSION_KEY and USERS_KEY must be distinct")
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

// ConfigureLogging applies the configured level to the standard logrus logger.
func ConfigureLogging(cfg Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
