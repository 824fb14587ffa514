package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// DelayRange bounds the randomized politeness delay between requests.
// Min == Max == 0 disables waiting entirely.
type DelayRange struct {
	Min time.Duration
	Max time.Duration
}

// Sample draws a uniform duration from the range.
func (d DelayRange) Sample() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int63n(int64(d.Max-d.Min)))
}

// SeedRequest describes one scrape job. Immutable for the job's lifetime.
type SeedRequest struct {
	URLs              []string
	MaxArticlesPerURL int
	SiteDelay         DelayRange
	Window            *Window
}

// ResultKey returns the ordinal JobResult key for the i-th seed URL (0-based).
func ResultKey(i int) string {
	return fmt.Sprintf("result%d", i+1)
}
