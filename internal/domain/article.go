package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Sentinel values the extractor falls back to when a page yields nothing usable.
// They are part of the record contract: callers can match on them.
const (
	TitleNotFound   = "No title found"
	TitleExtractErr = "Error extracting content"
	BodyNotFound    = "No content found"
)

// ArticleRecord is one extracted article. Immutable after creation.
type ArticleRecord struct {
	Title        string    `json:"title"`
	PublishDate  string    `json:"publish_date"`
	BodyText     string    `json:"body_text"`
	ImageURL     string    `json:"image_url"`
	SourceURL    string    `json:"source_url"`
	ContentHash  string    `json:"content_hash"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// ContentHash fingerprints a record as hex(sha256(title + sourceURL)).
// Titles repeat across sites; the URL keeps the digest distinct.
func ContentHash(title, sourceURL string) string {
	sum := sha256.Sum256([]byte(title + sourceURL))
	return hex.EncodeToString(sum[:])
}

// SiteResult aggregates one seed URL's pass. A failed site carries its error
// as data and an empty article list, it never aborts the batch.
type SiteResult struct {
	BaseURL               string          `json:"base_url"`
	Articles              []ArticleRecord `json:"articles"`
	TotalLinksFound       int             `json:"total_links_found"`
	SuccessfullyProcessed int             `json:"successfully_processed"`
	WindowStart           time.Time       `json:"window_start"`
	WindowEnd             time.Time       `json:"window_end"`
	Error                 string          `json:"error,omitempty"`
}

// JobResult maps ordinal keys ("result1", "result2", ...) to site results,
// one entry per seed URL in input order.
type JobResult map[string]SiteResult

// TotalArticles counts accepted records across all sites.
func (jr JobResult) TotalArticles() int {
	total := 0
	for _, r := range jr {
		total += len(r.Articles)
	}
	return total
}
