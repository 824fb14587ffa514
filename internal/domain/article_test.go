package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentHash_Deterministic(t *testing.T) {
	h1 := ContentHash("Some headline", "https://example.com/news/some-headline")
	h2 := ContentHash("Some headline", "https://example.com/news/some-headline")

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestContentHash_DistinguishesURLs(t *testing.T) {
	h1 := ContentHash("Weekly update", "https://a.example.com/post/1")
	h2 := ContentHash("Weekly update", "https://b.example.com/post/1")

	assert.NotEqual(t, h1, h2)
}

func TestResultKey_IsOneBased(t *testing.T) {
	assert.Equal(t, "result1", ResultKey(0))
	assert.Equal(t, "result3", ResultKey(2))
}

func TestCurrentWeek_HalfOpenMondayToMonday(t *testing.T) {
	// Wednesday 2025-06-11 15:30 UTC
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)

	w := CurrentWeek(now)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
}

func TestCurrentWeek_SundayBelongsToPrecedingMonday(t *testing.T) {
	sunday := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	w := CurrentWeek(sunday)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.True(t, w.Contains(sunday))
}

func TestJobResult_TotalArticles(t *testing.T) {
	jr := JobResult{
		"result1": SiteResult{Articles: []ArticleRecord{{}, {}}},
		"result2": SiteResult{},
	}

	assert.Equal(t, 2, jr.TotalArticles())
}
