package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "digest@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("MAIL_FROM", "digest@example.com")
	t.Setenv("MAIL_TO", "reader@example.com")
	// Clear optional settings that may leak in from the test host.
	t.Setenv("SUMMARY_PROVIDER", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("HISTORY_TTL_HOURS", "")
	t.Setenv("MAX_SUMMARY_INPUT_CHARS", "")
	t.Setenv("DAILY_SUMMARY_LIMIT", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SCHEDULE_CRON", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SummaryProvider != "openai" {
		t.Errorf("SummaryProvider = %q, want openai", cfg.SummaryProvider)
	}
	if cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.SMTPPort != 465 {
		t.Errorf("SMTPPort = %d, want 465", cfg.SMTPPort)
	}
	if cfg.MaxSummaryInputChars != 3000 {
		t.Errorf("MaxSummaryInputChars = %d, want 3000", cfg.MaxSummaryInputChars)
	}
	if cfg.DailySummaryLimit != 200 {
		t.Errorf("DailySummaryLimit = %d, want 200", cfg.DailySummaryLimit)
	}
	if cfg.HistoryTTL != 168*time.Hour {
		t.Errorf("HistoryTTL = %v, want 168h", cfg.HistoryTTL)
	}
	if cfg.HTTPTimeout != 20*time.Second {
		t.Errorf("HTTPTimeout = %v, want 20s", cfg.HTTPTimeout)
	}
}

func TestLoadSplitsRecipients(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAIL_TO", "alice@example.com, bob@example.com ,, carol@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	if len(cfg.MailTo) != len(want) {
		t.Fatalf("MailTo = %v, want %v", cfg.MailTo, want)
	}
	for i := range want {
		if cfg.MailTo[i] != want[i] {
			t.Errorf("MailTo[%d] = %q, want %q", i, cfg.MailTo[i], want[i])
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUMMARY_PROVIDER", "GEMINI")
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("HISTORY_TTL_HOURS", "24")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SummaryProvider != "gemini" {
		t.Errorf("SummaryProvider = %q, want gemini (lowercased)", cfg.SummaryProvider)
	}
	if cfg.HistoryTTL != 24*time.Hour {
		t.Errorf("HistoryTTL = %v, want 24h", cfg.HistoryTTL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
}

func validBase() Config {
	return Config{
		SummaryProvider:      "openai",
		OpenAIAPIKey:         "sk-test",
		SMTPHost:             "smtp.example.com",
		SMTPUser:             "u",
		SMTPPassword:         "p",
		MailFrom:             "from@example.com",
		MailTo:               []string{"to@example.com"},
		MaxSummaryInputChars: 3000,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing openai key", func(c *Config) { c.OpenAIAPIKey = "" }, "OPENAI_API_KEY"},
		{"azure without deployment", func(c *Config) { c.AzureEndpoint = "https://x.openai.azure.com" }, "AZURE_OPENAI_DEPLOYMENT"},
		{"gemini without key", func(c *Config) { c.SummaryProvider = "gemini" }, "GEMINI_API_KEY"},
		{"unknown provider", func(c *Config) { c.SummaryProvider = "claude" }, "SUMMARY_PROVIDER"},
		{"missing smtp host", func(c *Config) { c.SMTPHost = "" }, "SMTP_HOST"},
		{"missing smtp credentials", func(c *Config) { c.SMTPPassword = "" }, "SMTP_USER and SMTP_PASSWORD"},
		{"missing sender", func(c *Config) { c.MailFrom = "" }, "MAIL_FROM"},
		{"no recipients", func(c *Config) { c.MailTo = nil }, "MAIL_TO"},
		{"non-positive input cap", func(c *Config) { c.MaxSummaryInputChars = 0 }, "MAX_SUMMARY_INPUT_CHARS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validBase()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `
window_hours: 12
search:
  keywords: ["golang", "kubernetes"]
social:
  subreddits: ["golang"]
feeds:
  - name: "Go Blog"
    url: "https://go.dev/blog/feed.atom"
    category: "golang"
  - name: "K8s Blog"
    url: "https://kubernetes.io/feed.xml"
    keywords: ["release", "security"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src, err := LoadSources(path)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}

	if src.WindowHours != 12 {
		t.Errorf("WindowHours = %d, want 12", src.WindowHours)
	}
	if src.MaxItemsPerSource != 30 {
		t.Errorf("MaxItemsPerSource = %d, want default 30", src.MaxItemsPerSource)
	}
	if len(src.Search.Keywords) != 2 || src.Search.Keywords[0] != "golang" {
		t.Errorf("Search.Keywords = %v", src.Search.Keywords)
	}
	if len(src.Feeds) != 2 {
		t.Fatalf("Feeds = %d, want 2", len(src.Feeds))
	}
	if src.Feeds[0].Category != "golang" {
		t.Errorf("feed category = %q", src.Feeds[0].Category)
	}
	if len(src.Feeds[1].Keywords) != 2 {
		t.Errorf("feed keywords = %v", src.Feeds[1].Keywords)
	}
}

func TestLoadSourcesRejectsFeedWithoutURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	data := `
feeds:
  - name: "No URL"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadSources(path); err == nil {
		t.Fatal("expected error for feed without url")
	}
}

func TestLoadSourcesMissingFile(t *testing.T) {
	if _, err := LoadSources(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
