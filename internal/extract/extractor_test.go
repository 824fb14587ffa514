package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

const pageURL = "https://example.com/news/2024/05/01/big-story"

func longParagraphs(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("<p>This paragraph carries enough prose to clear the body length threshold.</p>")
	}
	return b.String()
}

func TestExtract_TitlePriorityOrder(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="Open Graph Title">
		<title>Document Title</title>
	</head><body><h1>Heading Title</h1></body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Equal(t, "Open Graph Title", record.Title)
}

func TestExtract_TitleFallsThroughShortCandidates(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="tiny">
		<title>The Actual Document Title</title>
	</head><body><h1>x</h1></body></html>`

	record := MustNew().Extract(html, pageURL)

	// og:title and h1 fail the length validation, <title> wins.
	assert.Equal(t, "The Actual Document Title", record.Title)
}

func TestExtract_TitleSentinelWhenNothingFound(t *testing.T) {
	record := MustNew().Extract(`<html><body></body></html>`, pageURL)

	assert.Equal(t, domain.TitleNotFound, record.Title)
}

func TestExtract_DateFromTimeElement(t *testing.T) {
	html := `<html><body>
		<time datetime="2024-05-01T10:00:00Z">May 1st</time>
	</body></html>`

	record := MustNew().Extract(html, "https://example.com/news/story")

	assert.Equal(t, "2024-05-01T10:00:00Z", record.PublishDate)
}

func TestExtract_DateMetaBeatsDateClass(t *testing.T) {
	html := `<html><head>
		<meta property="article:published_time" content="2024-04-30">
	</head><body><span class="date">yesterday</span></body></html>`

	record := MustNew().Extract(html, "https://example.com/news/story")

	assert.Equal(t, "2024-04-30", record.PublishDate)
}

func TestExtract_DateFallsBackToURL(t *testing.T) {
	record := MustNew().Extract(`<html><body></body></html>`, pageURL)

	assert.Equal(t, "2024-05-01", record.PublishDate)
}

func TestExtract_DateEmptyIsNotAnError(t *testing.T) {
	record := MustNew().Extract(`<html><body></body></html>`, "https://example.com/news/story")

	assert.Equal(t, "", record.PublishDate)
}

func TestExtract_BodyFromContentClassContainer(t *testing.T) {
	html := `<html><body>
		<nav><p>Navigation chrome that must not leak into the body text at all.</p></nav>
		<div class="article-content">` + longParagraphs(3) + `</div>
		<footer><p>Footer text</p></footer>
	</body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.NotContains(t, record.BodyText, "Navigation chrome")
	assert.NotContains(t, record.BodyText, "Footer text")
	assert.Contains(t, record.BodyText, "enough prose")
}

func TestExtract_BodyFromSemanticArticle(t *testing.T) {
	html := `<html><body><article>` + longParagraphs(3) + `</article></body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Contains(t, record.BodyText, "enough prose")
}

func TestExtract_BodyParagraphFallback(t *testing.T) {
	html := `<html><body>` + longParagraphs(3) + `</body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Contains(t, record.BodyText, "enough prose")
}

func TestExtract_BodySentinelBelowThreshold(t *testing.T) {
	html := `<html><body><article><p>Too short.</p></article></body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Equal(t, domain.BodyNotFound, record.BodyText)
}

func TestExtract_BodyOnePerLine(t *testing.T) {
	html := `<html><body><article>
		<h2>Section heading</h2>` + longParagraphs(2) + `
	</article></body></html>`

	record := MustNew().Extract(html, pageURL)

	lines := strings.Split(record.BodyText, "\n")
	assert.Equal(t, "Section heading", lines[0])
	assert.Len(t, lines, 3)
}

func TestExtract_ImagePriorityAndAbsoluteResolution(t *testing.T) {
	html := `<html><head>
		<meta property="og:image" content="/images/hero.jpg">
	</head><body><img src="/images/other.jpg"></body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Equal(t, "https://example.com/images/hero.jpg", record.ImageURL)
}

func TestExtract_ImageFromContentContainer(t *testing.T) {
	html := `<html><body>
		<img src="/logo.png">
		<article><img data-src="/images/lazy-hero.jpg"></article>
	</body></html>`

	record := MustNew().Extract(html, pageURL)

	assert.Equal(t, "https://example.com/images/lazy-hero.jpg", record.ImageURL)
}

func TestExtract_ImageEmptyWhenAbsent(t *testing.T) {
	record := MustNew().Extract(`<html><body></body></html>`, pageURL)

	assert.Equal(t, "", record.ImageURL)
}

func TestExtract_SourceURLAlwaysSet(t *testing.T) {
	record := MustNew().Extract("", pageURL)

	assert.Equal(t, pageURL, record.SourceURL)
}
