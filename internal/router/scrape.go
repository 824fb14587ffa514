package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/news-scraper/internal/apperr"
	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
	"github.com/DjordjeVuckovic/news-scraper/internal/scrape"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage"
)

const (
	defaultDelayMinSeconds = 2
	defaultDelayMaxSeconds = 5
)

// SessionFactory opens a fresh browser session for one scrape job.
type SessionFactory func(ctx context.Context) (browser.Session, error)

type ScrapeRequest struct {
	BaseURLs          []string  `json:"base_urls"`
	MaxArticlesPerURL int       `json:"max_articles_per_url"`
	DelayRange        []float64 `json:"delay_range"`
}

type ScrapeResponse struct {
	Success            bool             `json:"success"`
	Message            string           `json:"message"`
	Data               domain.JobResult `json:"data"`
	Timestamp          string           `json:"timestamp"`
	TotalURLsProcessed int              `json:"total_urls_processed"`
	TotalArticlesFound int              `json:"total_articles_found"`
}

type ScrapeRouter struct {
	e          *echo.Echo
	newSession SessionFactory
	rules      scrape.Rules
	cfg        scrape.Config
	storer     storage.Storer
}

type ScrapeRouterOption func(*ScrapeRouter)

// WithStorer archives accepted articles after each job. Archive failures are
// logged and never fail the job.
func WithStorer(storer storage.Storer) ScrapeRouterOption {
	return func(r *ScrapeRouter) {
		r.storer = storer
	}
}

func NewScrapeRouter(e *echo.Echo, newSession SessionFactory, rules scrape.Rules, cfg scrape.Config, opts ...ScrapeRouterOption) *ScrapeRouter {
	r := &ScrapeRouter{
		e:          e,
		newSession: newSession,
		rules:      rules,
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ScrapeRouter) Bind() {
	r.e.POST("/scrape", r.scrapeHandler)
}

// scrapeHandler runs one scrape job over the submitted seed URLs.
//
// @Summary Scrape articles from news sites
// @Description Visits each base URL, discovers article links, extracts content and returns articles published in the current week
// @Tags scrape
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "Seed URLs and job options"
// @Success 200 {object} ScrapeResponse
// @Failure 400 {object} map[string]string
// @Router /scrape [post]
func (r *ScrapeRouter) scrapeHandler(c echo.Context) error {
	var req ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	seed, err := r.buildSeedRequest(req)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	session, err := r.newSession(ctx)
	if err != nil {
		slog.Error("failed to open browser session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to open browser session")
	}
	defer session.Close()

	scraper, err := scrape.New(session, r.rules, r.cfg)
	if err != nil {
		slog.Error("failed to build scraper", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build scraper")
	}

	result := scraper.ScrapeBatch(ctx, seed)
	r.archive(ctx, result)

	return c.JSON(http.StatusOK, ScrapeResponse{
		Success:            true,
		Message:            "Scraping completed",
		Data:               result,
		Timestamp:          time.Now().UTC().Format(time.RFC3339),
		TotalURLsProcessed: len(seed.URLs),
		TotalArticlesFound: result.TotalArticles(),
	})
}

func (r *ScrapeRouter) buildSeedRequest(req ScrapeRequest) (domain.SeedRequest, error) {
	if len(req.BaseURLs) == 0 {
		return domain.SeedRequest{}, apperr.NewValidation("base_urls is required")
	}
	for _, raw := range req.BaseURLs {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return domain.SeedRequest{}, apperr.NewValidation("invalid base URL: " + raw)
		}
	}
	if req.MaxArticlesPerURL < 0 {
		return domain.SeedRequest{}, apperr.NewValidation("max_articles_per_url must not be negative")
	}

	delay := domain.DelayRange{
		Min: defaultDelayMinSeconds * time.Second,
		Max: defaultDelayMaxSeconds * time.Second,
	}
	if req.DelayRange != nil {
		if len(req.DelayRange) != 2 {
			return domain.SeedRequest{}, apperr.NewValidation("delay_range must have two elements")
		}
		if req.DelayRange[0] < 0 || req.DelayRange[1] < req.DelayRange[0] {
			return domain.SeedRequest{}, apperr.NewValidation("delay_range must be a non-negative [min, max] pair")
		}
		delay = domain.DelayRange{
			Min: time.Duration(req.DelayRange[0] * float64(time.Second)),
			Max: time.Duration(req.DelayRange[1] * float64(time.Second)),
		}
	}

	return domain.SeedRequest{
		URLs:              req.BaseURLs,
		MaxArticlesPerURL: req.MaxArticlesPerURL,
		SiteDelay:         delay,
	}, nil
}

func (r *ScrapeRouter) archive(ctx context.Context, result domain.JobResult) {
	if r.storer == nil {
		return
	}

	var records []domain.ArticleRecord
	for _, site := range result {
		records = append(records, site.Articles...)
	}
	if len(records) == 0 {
		return
	}

	if err := r.storer.SaveBulk(ctx, records); err != nil {
		slog.Warn("failed to archive scraped articles", "error", err, "count", len(records))
		return
	}
	slog.Info("archived scraped articles", "count", len(records))
}
