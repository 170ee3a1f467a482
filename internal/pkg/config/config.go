package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Browser   BrowserConfig   `yaml:"browser"`
	Export    ExportConfig    `yaml:"export"`
	Health    HealthConfig    `yaml:"health"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telegram  TelegramConfig  `yaml:"telegram"`
}

type CollectorConfig struct {
	Interval    time.Duration    `yaml:"interval"`    // pause between gather runs
	Concurrency int              `yaml:"concurrency"` // parallel subcategory fetches per category, 0 = GOMAXPROCS
	Categories  []CategoryConfig `yaml:"categories"`  // empty = built-in MLB prop catalog
}

type CategoryConfig struct {
	Name          string   `yaml:"name"`
	Subcategories []string `yaml:"subcategories"`
}

type ScraperConfig struct {
	Source     string           `yaml:"source"`
	DraftKings DraftKingsConfig `yaml:"draftkings"`
}

type DraftKingsConfig struct {
	BaseURL string `yaml:"base_url"`
}

type BrowserConfig struct {
	UserAgent    string        `yaml:"user_agent"`
	PageSettle   time.Duration `yaml:"page_settle"`   // time left for page scripts after navigation
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // hard cap per page fetch
}

type ExportConfig struct {
	SaveCSV     bool   `yaml:"save_csv"`
	CSVPath     string `yaml:"csv_path"`
	ConsoleRows int    `yaml:"console_rows"` // rows shown in the console table, 0 = default
}

type HealthConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type TelegramConfig struct {
	Enabled         bool          `yaml:"enabled"`
	BotToken        string        `yaml:"bot_token"`
	ChatID          int64         `yaml:"chat_id"`
	MinSendInterval time.Duration `yaml:"min_send_interval"`
}

func Load(configPath string) (*Config, error) {
	// Try to load .env so env fallbacks like TELEGRAM_BOT_TOKEN can live in
	// a local file; a missing .env is not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
