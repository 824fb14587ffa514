package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Asset types the scraper never needs. Blocking them cuts page-load latency
// substantially on media-heavy news sites.
var blockedAssetPatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.svg", "*.ico",
	"*.css", "*.woff", "*.woff2", "*.ttf",
}

// ChromeSession is the chromedp-backed Session. One Chrome process per job,
// one tab per site pass.
type ChromeSession struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cfg         Config
}

// NewChromeSession starts a headless Chrome allocator. The caller must Close
// it on every exit path or the OS process leaks.
func NewChromeSession(ctx context.Context, cfg Config) (*ChromeSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)

	return &ChromeSession{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		cfg:         cfg,
	}, nil
}

func (s *ChromeSession) NewPage(ctx context.Context) (Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.allocCtx)

	if err := chromedp.Run(tabCtx,
		network.Enable(),
		network.SetBlockedURLs(blockedAssetPatterns),
		emulation.SetUserAgentOverride(randomUserAgent()),
	); err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to prepare page: %w", err)
	}

	return &chromePage{ctx: tabCtx, cancel: tabCancel, cfg: s.cfg}, nil
}

func (s *ChromeSession) Close() error {
	s.allocCancel()
	slog.Debug("browser session closed")
	return nil
}

type chromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    Config
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(p.ctx, p.cfg.NavigationTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (p *chromePage) HTML(ctx context.Context) (string, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to capture rendered HTML: %w", err)
	}
	return html, nil
}

func (p *chromePage) Evaluate(ctx context.Context, script string, out any) error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(script, out))
}

func (p *chromePage) Click(ctx context.Context, selector string) error {
	clickCtx, cancel := context.WithTimeout(p.ctx, p.cfg.ClickTimeout)
	defer cancel()

	queryOpt := chromedp.ByQuery
	if strings.HasPrefix(selector, "//") {
		queryOpt = chromedp.BySearch
	}

	return chromedp.Run(clickCtx, chromedp.Click(selector, queryOpt, chromedp.NodeVisible))
}

func (p *chromePage) Close() error {
	p.cancel()
	return nil
}
