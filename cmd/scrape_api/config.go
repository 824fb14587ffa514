package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/scrape"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-scraper/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type ScrapeAPIConfig struct {
	Rules         scrape.Rules
	Browser       browser.Config
	StorageConfig *factory.StorageConfig
}

func (as *AppConfig) Load() (*ScrapeAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/scrape_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	rules := scrape.DefaultRules()
	if rulesPath := os.Getenv("SCRAPER_RULES_PATH"); rulesPath != "" {
		f, err := os.Open(rulesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open rules file: %w", err)
		}
		rules, err = scrape.LoadRules(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to load rules file: %w", err)
		}
		slog.Info("Loaded scraper rules", "path", rulesPath)
	}

	browserCfg := browser.DefaultConfig()
	if os.Getenv("BROWSER_HEADLESS") == "false" {
		browserCfg.Headless = false
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	return &ScrapeAPIConfig{
		Rules:         rules,
		Browser:       browserCfg,
		StorageConfig: storageCfg,
	}, nil
}
