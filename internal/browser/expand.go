package browser

import (
	"context"
	"log/slog"
	"time"
)

const (
	scrollToBottomScript = `window.scrollTo(0, document.body.scrollHeight)`
	documentHeightScript = `document.body.scrollHeight`
)

// ExpandConfig bounds the lazy-content expansion loop.
type ExpandConfig struct {
	// MaxRounds caps scroll/click iterations.
	MaxRounds int
	// LoadMoreSelectors are tried in priority order each round; the first
	// successful click wins the round.
	LoadMoreSelectors []string
	// SettleDelay is the wait after a scroll or click before re-measuring.
	SettleDelay time.Duration
}

func DefaultExpandConfig() ExpandConfig {
	return ExpandConfig{
		MaxRounds:         3,
		LoadMoreSelectors: DefaultLoadMoreSelectors(),
		SettleDelay:       2 * time.Second,
	}
}

// DefaultLoadMoreSelectors covers the common "load more" affordances:
// text-matched buttons and links (XPath), utility classes, data attributes
// and pagination "next" controls.
func DefaultLoadMoreSelectors() []string {
	return []string{
		`//button[contains(translate(., 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'load more')]`,
		`//button[contains(translate(., 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'show more')]`,
		`//a[contains(translate(., 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'load more')]`,
		`//a[contains(translate(., 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), 'show more')]`,
		`.load-more`, `.show-more`, `.more-button`, `.load-button`,
		`[data-load-more]`, `[data-show-more]`,
		`.pagination .next`, `.pagination a[rel='next']`, `.next-page`,
	}
}

// ExpandContent scrolls the page and clicks "load more" affordances until the
// document stops growing or MaxRounds is exhausted. Expansion failure is not
// an error: a page with no additional content simply exits the loop.
func ExpandContent(ctx context.Context, page Page, cfg ExpandConfig) {
	for round := 0; round < cfg.MaxRounds; round++ {
		if err := page.Evaluate(ctx, scrollToBottomScript, nil); err != nil {
			slog.Debug("scroll failed, stopping expansion", "round", round, "error", err)
			return
		}
		if !wait(ctx, cfg.SettleDelay) {
			return
		}

		clicked := false
		for _, selector := range cfg.LoadMoreSelectors {
			if err := page.Click(ctx, selector); err != nil {
				continue
			}
			slog.Debug("clicked load-more affordance", "selector", selector)
			clicked = true
			if !wait(ctx, cfg.SettleDelay) {
				return
			}
			break
		}

		if clicked {
			continue
		}

		// Nothing clickable: the page has stabilized once its height stops
		// changing across a settle period.
		before, err := documentHeight(ctx, page)
		if err != nil {
			return
		}
		if !wait(ctx, cfg.SettleDelay) {
			return
		}
		after, err := documentHeight(ctx, page)
		if err != nil {
			return
		}
		if before == after {
			return
		}
	}
}

func documentHeight(ctx context.Context, page Page) (float64, error) {
	var height float64
	if err := page.Evaluate(ctx, documentHeightScript, &height); err != nil {
		return 0, err
	}
	return height, nil
}

// wait sleeps for d unless the context is cancelled first. Returns false on
// cancellation.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
