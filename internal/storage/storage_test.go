package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

func testRecord(title string) domain.ArticleRecord {
	return domain.ArticleRecord{
		Title:        title,
		PublishDate:  "2024-05-08",
		BodyText:     "Body text for " + title,
		SourceURL:    "https://example.com/news/" + title,
		ContentHash:  domain.ContentHash(title, "https://example.com/news/"+title),
		DiscoveredAt: time.Date(2024, 5, 8, 12, 0, 0, 0, time.UTC),
	}
}

func TestInMemStorer_SaveAndSaveBulk(t *testing.T) {
	// Arrange
	storer := NewInMemStorer()
	ctx := context.Background()

	// Act
	id, err := storer.Save(ctx, testRecord("first"))
	require.NoError(t, err)
	err = storer.SaveBulk(ctx, []domain.ArticleRecord{testRecord("second"), testRecord("third")})
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, uuid.Nil, id)
	records := storer.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Title)
	assert.Equal(t, "third", records[2].Title)
}

func TestJsonFileStorer_AppendsOneLinePerRecord(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	storer := NewJsonFileStorer(path)
	ctx := context.Background()

	// Act
	_, err := storer.Save(ctx, testRecord("first"))
	require.NoError(t, err)
	err = storer.SaveBulk(ctx, []domain.ArticleRecord{testRecord("second")})
	require.NoError(t, err)

	// Assert
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec domain.ArticleRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		titles = append(titles, rec.Title)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"first", "second"}, titles)
}
