package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

// Storer archives records into an Elasticsearch index so a downstream search
// service can pick them up.
type Storer struct {
	typedClient *elasticsearch.TypedClient
	indexName   string
}

// Document is the index shape of one scraped record.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PublishDate  string    `json:"publish_date"`
	BodyText     string    `json:"body_text"`
	ImageURL     string    `json:"image_url"`
	SourceURL    string    `json:"source_url"`
	ContentHash  string    `json:"content_hash"`
	DiscoveredAt time.Time `json:"discovered_at"`
	IndexedAt    time.Time `json:"indexed_at"`
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	storer := &Storer{
		typedClient: client,
		indexName:   config.IndexName,
	}

	if err := storer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return storer, nil
}

func (e *Storer) Save(ctx context.Context, record domain.ArticleRecord) (uuid.UUID, error) {
	id := uuid.New()
	doc := recordToDocument(id, record)

	res, err := e.typedClient.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index document: %w", err)
	}

	slog.Info("document indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return id, nil
}

func (e *Storer) SaveBulk(ctx context.Context, records []domain.ArticleRecord) error {
	if len(records) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.typedClient,
		NumWorkers:    2,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed int
	for _, record := range records {
		doc := recordToDocument(uuid.New(), record)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(docBytes),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed++
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d records", failed, len(records))
	}
	return nil
}

func (e *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := e.typedClient.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":            types.NewKeywordProperty(),
			"title":         types.NewTextProperty(),
			"publish_date":  types.NewKeywordProperty(),
			"body_text":     types.NewTextProperty(),
			"image_url":     types.NewKeywordProperty(),
			"source_url":    types.NewKeywordProperty(),
			"content_hash":  types.NewKeywordProperty(),
			"discovered_at": types.NewDateProperty(),
			"indexed_at":    types.NewDateProperty(),
		},
	}

	_, err = e.typedClient.Indices.Create(e.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	slog.Info("index created", "index", e.indexName)
	return nil
}

func recordToDocument(id uuid.UUID, record domain.ArticleRecord) Document {
	return Document{
		ID:           id.String(),
		Title:        record.Title,
		PublishDate:  record.PublishDate,
		BodyText:     record.BodyText,
		ImageURL:     record.ImageURL,
		SourceURL:    record.SourceURL,
		ContentHash:  record.ContentHash,
		DiscoveredAt: record.DiscoveredAt,
		IndexedAt:    time.Now(),
	}
}
