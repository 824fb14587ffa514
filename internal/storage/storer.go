// Package storage archives accepted article records. Archiving is a
// best-effort downstream concern: a failed save is logged by callers, never
// failing the scrape job that produced the records.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

type Storer interface {
	Save(ctx context.Context, record domain.ArticleRecord) (uuid.UUID, error)
	SaveBulk(ctx context.Context, records []domain.ArticleRecord) error
}

type Type string

const (
	ES       Type = "es"
	PG       Type = "pg"
	JSONFile Type = "json_file"
	InMem    Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
