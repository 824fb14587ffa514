// Package main News Scraper API
// @title News Scraper API
// @version 1.0
// @description A browser-driven scraping service that collects this week's articles from news sites
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@newsscraper.com
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/router"
	"github.com/DjordjeVuckovic/news-scraper/internal/scrape"
	"github.com/DjordjeVuckovic/news-scraper/internal/server"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage/factory"
	pkgserver "github.com/DjordjeVuckovic/news-scraper/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Scraper API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	sessionFactory := func(ctx context.Context) (browser.Session, error) {
		return browser.NewChromeSession(ctx, cfg.Browser)
	}

	var routerOpts []router.ScrapeRouterOption
	if cfg.StorageConfig != nil {
		storer, err := factory.NewStorer(s.Context(), cfg.StorageConfig)
		if err != nil {
			slog.Error("Failed to create article storer", "error", err)
			os.Exit(1)
			return
		}
		routerOpts = append(routerOpts, router.WithStorer(storer))
		slog.Info("Article archiving enabled", "type", cfg.StorageConfig.Type)
	} else {
		slog.Info("Article archiving disabled")
	}

	scrapeRouter := router.NewScrapeRouter(s.Echo, sessionFactory, cfg.Rules, scrape.DefaultConfig(), routerOpts...)
	scrapeRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
