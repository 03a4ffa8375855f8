package config

import (
	"os"
	"strconv"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort      string
	DatabaseURL     string
	DatasetPath     string
	DatasetHTMLPath string
	CeilingYear     string
	CacheTTLMinutes string
	LogLevel        string
	LogFormat       string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DatasetPath:     getEnv("DATASET_PATH", ""),
		DatasetHTMLPath: getEnv("DATASET_HTML_PATH", ""),
		CeilingYear:     getEnv("CEILING_YEAR", "2025"),
		CacheTTLMinutes: getEnv("CACHE_TTL_MINUTES", "5"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

// GetCacheTTL returns the query cache TTL, falling back to 5 minutes
func (c *Config) GetCacheTTL() time.Duration {
	minutes, err := strconv.Atoi(c.CacheTTLMinutes)
	if err != nil || minutes <= 0 {
		logrus.Warnf("Invalid CACHE_TTL_MINUTES value: %s, using default 5 minutes", c.CacheTTLMinutes)
		return 5 * time.Minute
	}

	return time.Duration(minutes) * time.Minute
}

// GetCeilingYear returns the open-range ceiling year, falling back to 2025
func (c *Config) GetCeilingYear() int {
	year, err := strconv.Atoi(c.CeilingYear)
	if err != nil || year <= 0 {
		logrus.Warnf("Invalid CEILING_YEAR value: %s, using default 2025", c.CeilingYear)
		return 2025
	}

	return year
}

// Unified merges environment overrides into the structured defaults
func (c *Config) Unified() *shared.UnifiedConfiguration {
	unified := shared.NewDefaultUnifiedConfiguration()
	unified.Service.Port = c.ServerPort
	unified.Cache.DefaultTTL = c.GetCacheTTL()
	unified.Query.CeilingYear = c.GetCeilingYear()
	unified.Logging.Level = c.LogLevel
	unified.Logging.Format = c.LogFormat
	unified.ValidateAndApplyDefaults()
	return unified
}

// ConfigureLogging applies level and format to the standard logrus logger
func ConfigureLogging(cfg shared.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL value: %s, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
