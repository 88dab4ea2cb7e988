// Package config loads runtime settings from the environment and the
// YAML source list.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Summarizer settings
	SummaryProvider      string // "openai" or "gemini"
	OpenAIAPIKey         string
	OpenAIModel          string
	AzureEndpoint        string // when set, OpenAI calls go through Azure
	AzureDeployment      string
	GeminiAPIKey         string
	GeminiModel          string
	SummaryMaxTokens     int
	MaxSummaryInputChars int // prefix cap on text handed to the summarizer
	DailySummaryLimit    int // summarizer invocation budget per day (0 = unlimited)

	// Cache settings
	CacheDir string

	// Mail settings
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	MailFrom          string
	MailTo            []string
	MailSubjectPrefix string

	// Sent-history settings
	DatabaseURL string // Postgres history backend when set
	HistoryFile string
	HistoryTTL  time.Duration

	// App settings
	SourcesFile      string
	ScheduleCron     string // empty means run once and exit
	LogLevel         string
	HTTPTimeout      time.Duration
	EnableMonitoring bool
	MonitoringPort   int
}

func Load() (*Config, error) {
	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		// Default values
		SummaryProvider:      "openai",
		OpenAIModel:          "gpt-3.5-turbo",
		GeminiModel:          "gemini-1.5-flash",
		SummaryMaxTokens:     100,
		MaxSummaryInputChars: 3000,
		DailySummaryLimit:    200,
		CacheDir:             "./cache",
		SMTPPort:             465,
		MailSubjectPrefix:    "[News Digest]",
		HistoryFile:          "./data/sent_history.json",
		HistoryTTL:           168 * time.Hour,
		SourcesFile:          "configs/sources.yaml",
		LogLevel:             "info",
		HTTPTimeout:          20 * time.Second,
		MonitoringPort:       8080,
	}

	// Credentials
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AzureEndpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	cfg.AzureDeployment = os.Getenv("AZURE_OPENAI_DEPLOYMENT")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.SummaryProvider = strings.ToLower(getEnvOrDefault("SUMMARY_PROVIDER", cfg.SummaryProvider))
	cfg.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)
	cfg.SummaryMaxTokens = getEnvIntOrDefault("SUMMARY_MAX_TOKENS", cfg.SummaryMaxTokens)
	cfg.MaxSummaryInputChars = getEnvIntOrDefault("MAX_SUMMARY_INPUT_CHARS", cfg.MaxSummaryInputChars)
	cfg.DailySummaryLimit = getEnvIntOrDefault("DAILY_SUMMARY_LIMIT", cfg.DailySummaryLimit)

	cfg.CacheDir = getEnvOrDefault("CACHE_DIR", cfg.CacheDir)

	// Mail settings
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.MailFrom = os.Getenv("MAIL_FROM")
	cfg.MailTo = splitList(os.Getenv("MAIL_TO"))
	cfg.MailSubjectPrefix = getEnvOrDefault("MAIL_SUBJECT_PREFIX", cfg.MailSubjectPrefix)

	// Sent-history settings
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.HistoryFile = getEnvOrDefault("HISTORY_FILE", cfg.HistoryFile)
	if v := getEnvIntOrDefault("HISTORY_TTL_HOURS", 0); v > 0 {
		cfg.HistoryTTL = time.Duration(v) * time.Hour
	}

	// App settings
	cfg.SourcesFile = getEnvOrDefault("SOURCES_FILE", cfg.SourcesFile)
	cfg.ScheduleCron = os.Getenv("SCHEDULE_CRON")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	if v := getEnvIntOrDefault("HTTP_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.HTTPTimeout = time.Duration(v) * time.Second
	}
	cfg.EnableMonitoring = os.Getenv("ENABLE_HTTP_MONITORING") == "true"
	cfg.MonitoringPort = getEnvIntOrDefault("MONITORING_PORT", cfg.MonitoringPort)

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.SummaryProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
		if c.AzureEndpoint != "" && c.AzureDeployment == "" {
			return fmt.Errorf("AZURE_OPENAI_DEPLOYMENT is required when AZURE_OPENAI_ENDPOINT is set")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required")
		}
	default:
		return fmt.Errorf("SUMMARY_PROVIDER must be 'openai' or 'gemini'")
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if c.SMTPUser == "" || c.SMTPPassword == "" {
		return fmt.Errorf("SMTP_USER and SMTP_PASSWORD are required")
	}
	if c.MailFrom == "" {
		return fmt.Errorf("MAIL_FROM is required")
	}
	if len(c.MailTo) == 0 {
		return fmt.Errorf("MAIL_TO is required")
	}
	if c.MaxSummaryInputChars <= 0 {
		return fmt.Errorf("MAX_SUMMARY_INPUT_CHARS must be positive")
	}
	return nil
}
