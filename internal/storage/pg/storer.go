package pg

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

// Storer archives records into the scraped_articles table.
type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) Save(ctx context.Context, record domain.ArticleRecord) (uuid.UUID, error) {
	cmd := `
        INSERT INTO scraped_articles (id, title, publish_date, body_text, image_url, source_url, content_hash, discovered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (content_hash) DO UPDATE SET discovered_at = EXCLUDED.discovered_at
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		uuid.New(),
		record.Title,
		record.PublishDate,
		record.BodyText,
		record.ImageURL,
		record.SourceURL,
		record.ContentHash,
		record.DiscoveredAt,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to insert article record: %w", err)
	}

	return id, nil
}

func (s *Storer) SaveBulk(ctx context.Context, records []domain.ArticleRecord) error {
	if len(records) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(records))
	for i, r := range records {
		rows[i] = []interface{}{
			uuid.New(),
			r.Title,
			r.PublishDate,
			r.BodyText,
			r.ImageURL,
			r.SourceURL,
			r.ContentHash,
			r.DiscoveredAt,
		}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"scraped_articles"},
		[]string{"id", "title", "publish_date", "body_text", "image_url", "source_url", "content_hash", "discovered_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert article records: %w", err)
	}

	return nil
}
