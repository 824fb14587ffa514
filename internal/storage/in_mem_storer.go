package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

// InMemStorer keeps records in memory. Used in tests and as a null sink.
type InMemStorer struct {
	mu      sync.Mutex
	records []domain.ArticleRecord
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{}
}

func (s *InMemStorer) Save(ctx context.Context, record domain.ArticleRecord) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return uuid.New(), nil
}

func (s *InMemStorer) SaveBulk(ctx context.Context, records []domain.ArticleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *InMemStorer) Records() []domain.ArticleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ArticleRecord, len(s.records))
	copy(out, s.records)
	return out
}
