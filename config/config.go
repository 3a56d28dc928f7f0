package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PostgresEnabled  bool

	DelayMin       time.Duration
	DelayMax       time.Duration
	RequestTimeout time.Duration
	MaxRetries     int
	MaxConcurrency int

	OutputDir string
	LogLevel  string
	LogFile   string
	ChromeBin string
	UserAgent string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "collector"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "collector123"),
		PostgresDB:       getEnv("POSTGRES_DB", "casino_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),

		DelayMin:       getEnvDuration("SCRAPER_DELAY_MIN_MS", 1000),
		DelayMax:       getEnvDuration("SCRAPER_DELAY_MAX_MS", 3000),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT_MS", 30000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),

		OutputDir: getEnv("OUTPUT_DIR", "output"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		LogFile:   getEnv("LOG_FILE", ""),
		ChromeBin: getEnv("CHROME_BIN", ""),
		UserAgent: getEnv("USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}
