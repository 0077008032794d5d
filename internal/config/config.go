// Load envs from .env
// Load YAML config
// Override from env, fill defaults, validate

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	BaseURL string `yaml:"base_url" env:"TURNIP_BASE_URL"`

	//Browser
	Browser   string `yaml:"browser" env:"TURNIP_BROWSER"`
	Headless  bool   `yaml:"headless" env:"TURNIP_HEADLESS"`
	SlowMoMs  int    `yaml:"slow_mo_ms"`
	UserAgent string `yaml:"user_agent"`

	//Timing
	WaitTimeout time.Duration `yaml:"wait_timeout"`
	PaceMinMs   int           `yaml:"pace_min_ms"`
	PaceMaxMs   int           `yaml:"pace_max_ms"`

	//Paths
	ScreenshotDir string `yaml:"screenshot_dir"`

	//Optional notifications
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Default() *Config {
	return &Config{
		BaseURL:       "https://turnip.exchange",
		Browser:       "firefox",
		WaitTimeout:   10 * time.Second,
		PaceMinMs:     200,
		PaceMaxMs:     600,
		ScreenshotDir: "logs/screenshots",
	}
}

// Load reads path (missing file is fine) on top of the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("ℹ️ No config file at %s, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv("TURNIP_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TURNIP_BROWSER"); v != "" {
		cfg.Browser = v
	}
	if v := os.Getenv("TURNIP_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TURNIP_HEADLESS: %w", err)
		}
		cfg.Headless = headless
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	return nil
}

func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base_url is required")
	}
	switch cfg.Browser {
	case "firefox", "chromium":
	default:
		return fmt.Errorf("browser must be firefox or chromium, got %q", cfg.Browser)
	}
	if cfg.WaitTimeout <= 0 {
		return errors.New("wait_timeout must be positive")
	}
	if cfg.PaceMinMs < 0 || cfg.PaceMaxMs < cfg.PaceMinMs {
		return fmt.Errorf("invalid pacing window %d..%dms", cfg.PaceMinMs, cfg.PaceMaxMs)
	}
	if (cfg.TelegramToken == "") != (cfg.TelegramChatID == 0) {
		return errors.New("telegram_token and telegram_chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether results should also go to Telegram.
func (cfg *Config) TelegramEnabled() bool {
	return cfg.TelegramToken != "" && cfg.TelegramChatID != 0
}
