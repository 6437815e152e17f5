package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

// StoreConfig selects the task store adapter.
type StoreConfig struct {
	Type string // postgres, memory
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig drives the list-response cache. An empty URL disables it.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
	ListTTL  time.Duration
}

// NATSConfig drives task event publishing. An empty URL disables it.
type NATSConfig struct {
	URL string
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// SchedulerConfig drives the due-soon sweep.
type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration // how often the sweep runs
	Window   time.Duration // how far ahead "due soon" looks
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	listTTL, _ := time.ParseDuration(getEnv("REDIS_LIST_TTL", "30s"))

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))

	sweepInterval, _ := time.ParseDuration(getEnv("DUE_SWEEP_INTERVAL", "5m"))
	sweepWindow, _ := time.ParseDuration(getEnv("DUE_SWEEP_WINDOW", "24h"))

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "taskboard"),
			Port: getEnv("APP_PORT", "3001"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Type: getEnv("STORE_TYPE", "postgres"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			ListTTL:  listTTL,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   getEnv("LOG_COMPRESS", "true") == "true",
		},
		Scheduler: SchedulerConfig{
			Enabled:  getEnv("DUE_SWEEP_ENABLED", "true") == "true",
			Interval: sweepInterval,
			Window:   sweepWindow,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
