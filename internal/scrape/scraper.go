// Package scrape sequences the pipeline across one site and across a batch:
// render the seed page, expand lazy content, classify links, extract each
// candidate, filter by publish window and deduplicate across the whole job.
package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/DjordjeVuckovic/news-scraper/internal/browser"
	"github.com/DjordjeVuckovic/news-scraper/internal/classifier"
	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
	"github.com/DjordjeVuckovic/news-scraper/internal/extract"
	"github.com/DjordjeVuckovic/news-scraper/internal/retry"
)

const (
	DefaultMaxArticles = 50
	// Caps for the selector-based discovery pass.
	maxListingSelectors   = 10
	maxElementsPerListing = 50
)

// Script returning every distinct absolute href on the page.
const collectLinksScript = `(() => {
	const links = [];
	document.querySelectorAll('a[href]').forEach(el => {
		const href = el.href;
		if (href && href !== window.location.href) {
			links.push(href);
		}
	});
	return [...new Set(links)];
})()`

// Config tunes the orchestrator. Zero values fall back to defaults in New.
type Config struct {
	MaxArticlesPerURL int
	// ArticleDelay spaces article fetches within one site. The inter-site
	// delay is caller-supplied on the request and applied as given, so a
	// zero range never forces a wait.
	ArticleDelay domain.DelayRange
	Expand       browser.ExpandConfig
	Retry        retry.Config
}

func DefaultConfig() Config {
	return Config{
		MaxArticlesPerURL: DefaultMaxArticles,
		ArticleDelay:      domain.DelayRange{Min: 1 * time.Second, Max: 3 * time.Second},
		Expand:            browser.DefaultExpandConfig(),
		Retry:             retry.DefaultConfig(),
	}
}

// Scraper runs scrape jobs over a browser session. Sites and articles are
// processed strictly sequentially: politeness toward targets and a shared
// seen-set without locking.
type Scraper struct {
	session    browser.Session
	classifier *classifier.Classifier
	extractor  *extract.Extractor
	retrier    *retry.Retrier
	listing    []string
	cfg        Config
	now        func() time.Time
}

func New(session browser.Session, rules Rules, cfg Config) (*Scraper, error) {
	cls, err := classifier.New(rules.Classifier)
	if err != nil {
		return nil, err
	}
	ext, err := extract.New(rules.Extractor)
	if err != nil {
		return nil, err
	}

	if cfg.MaxArticlesPerURL <= 0 {
		cfg.MaxArticlesPerURL = DefaultMaxArticles
	}
	if len(rules.LoadMoreSelectors) > 0 {
		cfg.Expand.LoadMoreSelectors = rules.LoadMoreSelectors
	}

	return &Scraper{
		session:    session,
		classifier: cls,
		extractor:  ext,
		retrier:    retry.New(cfg.Retry),
		listing:    rules.ListingSelectors,
		cfg:        cfg,
		now:        time.Now,
	}, nil
}

// ScrapeBatch processes every seed URL sequentially and returns exactly one
// SiteResult per input URL, keyed in input order. A failed site never aborts
// the batch.
func (s *Scraper) ScrapeBatch(ctx context.Context, req domain.SeedRequest) domain.JobResult {
	window := domain.CurrentWeek(s.now())
	if req.Window != nil {
		window = *req.Window
	}
	maxArticles := req.MaxArticlesPerURL
	if maxArticles <= 0 {
		maxArticles = s.cfg.MaxArticlesPerURL
	}

	slog.Info("starting scrape batch", "sites", len(req.URLs), "max_articles", maxArticles,
		"window_start", window.Start, "window_end", window.End)

	seen := NewSeenSet()
	results := make(domain.JobResult, len(req.URLs))

	for i, seedURL := range req.URLs {
		slog.Info("processing site", "site", i+1, "total", len(req.URLs), "url", seedURL)
		results[domain.ResultKey(i)] = s.ScrapeSite(ctx, seedURL, window, maxArticles, seen)

		if i < len(req.URLs)-1 {
			sleep(ctx, req.SiteDelay.Sample())
		}
	}

	return results
}

// ScrapeSite runs one seed URL to completion. All failures are captured in
// the returned SiteResult; the method itself never fails.
func (s *Scraper) ScrapeSite(ctx context.Context, seedURL string, window domain.Window, maxArticles int, seen *SeenSet) domain.SiteResult {
	result := domain.SiteResult{
		BaseURL:     seedURL,
		Articles:    []domain.ArticleRecord{},
		WindowStart: window.Start,
		WindowEnd:   window.End,
	}

	page, err := s.session.NewPage(ctx)
	if err != nil {
		slog.Error("failed to open page", "url", seedURL, "error", err)
		result.Error = err.Error()
		return result
	}
	defer page.Close()

	if err := s.navigate(ctx, page, seedURL); err != nil {
		slog.Error("seed navigation failed", "url", seedURL, "error", err)
		result.Error = err.Error()
		return result
	}

	browser.ExpandContent(ctx, page, s.cfg.Expand)

	candidates := s.discoverLinks(ctx, page, seedURL)
	if len(candidates) > maxArticles {
		candidates = candidates[:maxArticles]
	}
	result.TotalLinksFound = len(candidates)
	slog.Info("processing candidate links", "url", seedURL, "candidates", len(candidates))

	for i, articleURL := range candidates {
		if seen.Seen(articleURL) {
			continue
		}

		record, err := s.processArticle(ctx, page, articleURL)
		if err != nil {
			// One bad page never fails the site.
			slog.Warn("skipping article", "url", articleURL, "error", err)
			continue
		}

		if !InWindow(record.PublishDate, window) {
			slog.Debug("article outside window", "url", articleURL, "date", record.PublishDate)
			continue
		}

		record.ContentHash = domain.ContentHash(record.Title, record.SourceURL)
		record.DiscoveredAt = s.now().UTC()

		result.Articles = append(result.Articles, record)
		seen.Add(articleURL)
		slog.Debug("article accepted", "url", articleURL, "processed", i+1, "of", len(candidates))

		sleep(ctx, s.cfg.ArticleDelay.Sample())
	}

	result.SuccessfullyProcessed = len(result.Articles)
	slog.Info("site done", "url", seedURL, "articles", len(result.Articles), "links", result.TotalLinksFound)
	return result
}

func (s *Scraper) navigate(ctx context.Context, page browser.Page, url string) error {
	return s.retrier.Do(ctx, func() error {
		return page.Navigate(ctx, url)
	})
}

func (s *Scraper) processArticle(ctx context.Context, page browser.Page, articleURL string) (domain.ArticleRecord, error) {
	if err := s.navigate(ctx, page, articleURL); err != nil {
		return domain.ArticleRecord{}, err
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return domain.ArticleRecord{}, err
	}

	return s.extractor.Extract(html, articleURL), nil
}

// discoverLinks unions two passes: a script collecting every anchor href, and
// a selector pass over the rendered HTML for listing layouts the script-based
// collection can miss (e.g. links rewritten on click). Order of first
// discovery is preserved; duplicates within the site pass are dropped.
func (s *Scraper) discoverLinks(ctx context.Context, page browser.Page, seedURL string) []string {
	var ordered []string
	known := make(map[string]struct{})
	add := func(link string) {
		if _, ok := known[link]; ok {
			return
		}
		if !s.classifier.IsArticle(link, seedURL) {
			return
		}
		known[link] = struct{}{}
		ordered = append(ordered, link)
	}

	var raw []string
	if err := page.Evaluate(ctx, collectLinksScript, &raw); err != nil {
		slog.Warn("link collection script failed", "url", seedURL, "error", err)
	}
	for _, link := range raw {
		add(link)
	}

	html, err := page.HTML(ctx)
	if err != nil {
		slog.Debug("selector link pass skipped", "url", seedURL, "error", err)
		return ordered
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ordered
	}

	base, err := url.Parse(seedURL)
	if err != nil {
		return ordered
	}

	selectors := s.listing
	if len(selectors) > maxListingSelectors {
		selectors = selectors[:maxListingSelectors]
	}
	for _, selector := range selectors {
		doc.Find(selector).EachWithBreak(func(i int, el *goquery.Selection) bool {
			if i >= maxElementsPerListing {
				return false
			}
			href, ok := el.Attr("href")
			if !ok || href == "" {
				return true
			}
			if ref, err := url.Parse(href); err == nil {
				add(base.ResolveReference(ref).String())
			}
			return true
		})
	}

	return ordered
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
