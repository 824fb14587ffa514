package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
	"github.com/DjordjeVuckovic/news-scraper/internal/scrape"
)

func main() {
	cfg := parseFlags()

	urls, err := cfg.parseURLs()
	if err != nil {
		slog.Error("Invalid arguments", "error", err)
		os.Exit(1)
	}
	window, err := cfg.parseWindow()
	if err != nil {
		slog.Error("Invalid window", "error", err)
		os.Exit(1)
	}
	siteDelay, err := cfg.delayRange()
	if err != nil {
		slog.Error("Invalid delay range", "error", err)
		os.Exit(1)
	}

	rules := scrape.DefaultRules()
	if cfg.RulesPath != "" {
		f, err := os.Open(cfg.RulesPath)
		if err != nil {
			slog.Error("Failed to open rules file", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
		rules, err = scrape.LoadRules(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to load rules file", "path", cfg.RulesPath, "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	browserCfg := browser.DefaultConfig()
	browserCfg.Headless = !cfg.Headful

	session, err := browser.NewChromeSession(ctx, browserCfg)
	if err != nil {
		slog.Error("Failed to start browser session", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	scraper, err := scrape.New(session, rules, scrape.DefaultConfig())
	if err != nil {
		slog.Error("Failed to build scraper", "error", err)
		os.Exit(1)
	}

	result := scraper.ScrapeBatch(ctx, domain.SeedRequest{
		URLs:              urls,
		MaxArticlesPerURL: cfg.Max,
		SiteDelay:         siteDelay,
		Window:            window,
	})

	slog.Info("Scrape job finished", "sites", len(urls), "articles", result.TotalArticles())

	if err := writeResult(cfg.Output, result); err != nil {
		slog.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}

func writeResult(path string, result domain.JobResult) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
