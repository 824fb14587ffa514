package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

// JsonFileStorer appends records as JSON lines, one object per line, so the
// archive can be consumed by downstream import pipelines.
type JsonFileStorer struct {
	mu       sync.Mutex
	filePath string
}

func NewJsonFileStorer(filePath string) *JsonFileStorer {
	return &JsonFileStorer{filePath: filePath}
}

func (s *JsonFileStorer) Save(ctx context.Context, record domain.ArticleRecord) (uuid.UUID, error) {
	if err := s.append(record); err != nil {
		return uuid.Nil, err
	}
	return uuid.New(), nil
}

func (s *JsonFileStorer) SaveBulk(ctx context.Context, records []domain.ArticleRecord) error {
	for _, record := range records {
		if err := s.append(record); err != nil {
			return err
		}
	}
	return nil
}

func (s *JsonFileStorer) append(record domain.ArticleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}
