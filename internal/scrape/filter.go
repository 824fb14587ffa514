package scrape

import (
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

// InWindow reports whether a raw publish-date string falls inside the window.
// The policy is permissive inclusion: an empty or unparsable date admits the
// article, because a missing date must not silently suppress content. Dates
// without an offset are read as UTC.
func InWindow(rawDate string, w domain.Window) bool {
	rawDate = strings.TrimSpace(rawDate)
	if rawDate == "" {
		return true
	}

	parsed, err := dateparse.ParseIn(rawDate, time.UTC)
	if err != nil {
		slog.Debug("unparsable publish date, including article", "date", rawDate, "error", err)
		return true
	}

	return w.Contains(parsed)
}
