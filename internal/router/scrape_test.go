package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/news-scraper/internal/apperr"
	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
	"github.com/DjordjeVuckovic/news-scraper/internal/router"
	"github.com/DjordjeVuckovic/news-scraper/internal/scrape"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage"
)

type fakePage struct {
	htmlByURL map[string]string
	current   string
}

func (f *fakePage) Navigate(ctx context.Context, url string) error {
	f.current = url
	return nil
}

func (f *fakePage) HTML(ctx context.Context) (string, error) {
	return f.htmlByURL[f.current], nil
}

func (f *fakePage) Evaluate(ctx context.Context, script string, out any) error {
	return nil
}

func (f *fakePage) Click(ctx context.Context, selector string) error {
	return errors.New("selector not found")
}

func (f *fakePage) Close() error { return nil }

type fakeSession struct {
	page *fakePage
}

func (f *fakeSession) NewPage(ctx context.Context) (browser.Page, error) {
	return f.page, nil
}

func (f *fakeSession) Close() error { return nil }

func testConfig() scrape.Config {
	cfg := scrape.DefaultConfig()
	cfg.ArticleDelay = domain.DelayRange{}
	cfg.Expand.MaxRounds = 0
	cfg.Retry.MaxAttempts = 1
	return cfg
}

func newTestRouter(t *testing.T, factory router.SessionFactory, opts ...router.ScrapeRouterOption) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	r := router.NewScrapeRouter(e, factory, scrape.DefaultRules(), testConfig(), opts...)
	r.Bind()
	return e
}

func postScrape(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/scrape", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestScrapeHandler_RunsJobAndArchives(t *testing.T) {
	// Arrange
	today := time.Now().UTC().Format("2006-01-02")
	page := &fakePage{htmlByURL: map[string]string{
		"https://example.com/news": `<html><body><article>
			<a href="/news/big-story-today">Big story</a>
			</article></body></html>`,
		"https://example.com/news/big-story-today": fmt.Sprintf(`<html><head>
			<meta property="og:title" content="Big story lands today">
			<meta property="article:published_time" content="%s">
			</head><body><article>
			<p>This paragraph carries enough prose to clear the body length threshold.</p>
			<p>This paragraph carries enough prose to clear the body length threshold.</p>
			</article></body></html>`, today),
	}}
	store := storage.NewInMemStorer()
	e := newTestRouter(t, func(ctx context.Context) (browser.Session, error) {
		return &fakeSession{page: page}, nil
	}, router.WithStorer(store))

	// Act
	rec := postScrape(e, `{"base_urls": ["https://example.com/news"], "delay_range": [0, 0]}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var resp router.ScrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.TotalURLsProcessed)
	assert.Equal(t, 1, resp.TotalArticlesFound)
	require.Contains(t, resp.Data, "result1")
	require.Len(t, resp.Data["result1"].Articles, 1)
	assert.Equal(t, "Big story lands today", resp.Data["result1"].Articles[0].Title)

	records := store.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "https://example.com/news/big-story-today", records[0].SourceURL)
}

func TestScrapeHandler_RejectsMissingBaseURLs(t *testing.T) {
	e := newTestRouter(t, func(ctx context.Context) (browser.Session, error) {
		t.Fatal("session must not be opened for invalid requests")
		return nil, nil
	})

	rec := postScrape(e, `{"base_urls": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "base_urls is required")
}

func TestScrapeHandler_RejectsMalformedDelayRange(t *testing.T) {
	e := newTestRouter(t, func(ctx context.Context) (browser.Session, error) {
		t.Fatal("session must not be opened for invalid requests")
		return nil, nil
	})

	rec := postScrape(e, `{"base_urls": ["https://example.com"], "delay_range": [3]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "delay_range")
}

func TestScrapeHandler_RejectsNonHTTPBaseURL(t *testing.T) {
	e := newTestRouter(t, func(ctx context.Context) (browser.Session, error) {
		t.Fatal("session must not be opened for invalid requests")
		return nil, nil
	})

	rec := postScrape(e, `{"base_urls": ["ftp://example.com/feed"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid base URL")
}

func TestScrapeHandler_SessionFailureIsServerError(t *testing.T) {
	e := newTestRouter(t, func(ctx context.Context) (browser.Session, error) {
		return nil, errors.New("chrome not found")
	})

	rec := postScrape(e, `{"base_urls": ["https://example.com/news"], "delay_range": [0, 0]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
