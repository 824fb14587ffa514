// Package browser drives the headless-browser surface: navigation, resource
// blocking and lazy-content expansion. The rest of the pipeline only sees the
// Session and Page interfaces, so unit tests never launch a real browser.
package browser

import (
	"context"
	"time"
)

const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultClickTimeout      = 2 * time.Second
)

// Page is one rendered tab.
type Page interface {
	// Navigate loads url and returns once the document is ready.
	Navigate(ctx context.Context, url string) error
	// HTML returns the current rendered document.
	HTML(ctx context.Context) (string, error)
	// Evaluate runs a script snippet and unmarshals its result into out.
	Evaluate(ctx context.Context, script string, out any) error
	// Click clicks the first visible element matching selector. Selectors
	// starting with "//" are treated as XPath, anything else as CSS.
	Click(ctx context.Context, selector string) error
	// Close releases the tab.
	Close() error
}

// Session owns a browser process for the duration of one job.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Config tunes the browser session.
type Config struct {
	NavigationTimeout time.Duration
	ClickTimeout      time.Duration
	Headless          bool
}

func DefaultConfig() Config {
	return Config{
		NavigationTimeout: DefaultNavigationTimeout,
		ClickTimeout:      DefaultClickTimeout,
		Headless:          true,
	}
}
