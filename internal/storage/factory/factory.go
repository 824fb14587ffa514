package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/news-scraper/internal/storage"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage/es"
	"github.com/DjordjeVuckovic/news-scraper/internal/storage/pg"
)

// NewStorer creates a storage.Storer from a loaded StorageConfig.
func NewStorer(ctx context.Context, cfg *StorageConfig) (storage.Storer, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewStorer(pool)

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}

		return es.NewStorer(ctx, *cfg.Es)

	case storage.JSONFile:
		return storage.NewJsonFileStorer(cfg.FilePath), nil

	case storage.InMem:
		return storage.NewInMemStorer(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
