package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://example.com/news"

func TestIsArticle_RejectsPseudoLinks(t *testing.T) {
	c := MustNew()

	for _, u := range []string{
		"",
		"#section",
		"javascript:void(0)",
		"mailto:editor@example.com",
		"tel:+123456789",
	} {
		assert.False(t, c.IsArticle(u, origin), "url %q", u)
	}
}

func TestIsArticle_RejectsCrossDomain(t *testing.T) {
	c := MustNew()

	assert.False(t, c.IsArticle("https://other.com/news/story-2024-01-01", origin))
	assert.False(t, c.IsArticle("/news/relative-story", origin), "relative links have no host")
}

func TestIsArticle_ExcludeBeatsStrongSignal(t *testing.T) {
	c := MustNew()

	// /tags/ is a definite exclude even though /2024/05/01/ is a strong signal.
	assert.False(t, c.IsArticle("https://example.com/tags/2024/05/01/story", origin))
	assert.False(t, c.IsArticle("https://example.com/author/jane/2024/05/report", origin))
}

func TestIsArticle_StrongSignals(t *testing.T) {
	c := MustNew()

	for _, u := range []string{
		"https://example.com/news/report-2024-05-01",
		"https://example.com/news/analysis/",
		"https://example.com/article/12345",
		"https://example.com/2024/05/01/big-story",
		"https://example.com/blog/how-we-built-it",
	} {
		assert.True(t, c.IsArticle(u, origin), "url %q", u)
	}
}

func TestIsArticle_DefiniteExcludes(t *testing.T) {
	c := MustNew()

	for _, u := range []string{
		"https://example.com/about",
		"https://example.com/search",
		"https://example.com/feed",
		"https://example.com/static/site.css",
		"https://example.com/page/2",
		"https://example.com/news/index.html",
	} {
		assert.False(t, c.IsArticle(u, origin), "url %q", u)
	}
}

func TestIsArticle_ShallowPathNeedsKeyword(t *testing.T) {
	c := MustNew()

	// Single short segment, no keyword: homepage-ish, rejected.
	assert.False(t, c.IsArticle("https://example.com/team", origin))
	// Single segment but carries a content keyword.
	assert.True(t, c.IsArticle("https://example.com/exclusive", origin))
}

func TestIsArticle_QueryParameterGuard(t *testing.T) {
	c := MustNew()

	assert.True(t, c.IsArticle("https://example.com/reports/quarterly-earnings?ref=home", origin))
	assert.False(t, c.IsArticle("https://example.com/reports/quarterly-earnings?a=1&b=2&c=3&d=4", origin))
}

func TestIsArticle_MediumSignals(t *testing.T) {
	c := MustNew()

	assert.True(t, c.IsArticle("https://example.com/projects/latest-work.html", origin))
	assert.True(t, c.IsArticle("https://example.com/stories/a-very-long-headline-slug", origin))
}

func TestIsArticle_Deterministic(t *testing.T) {
	c := MustNew()
	u := "https://example.com/news/report-2024-05-01"

	first := c.IsArticle(u, origin)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.IsArticle(u, origin))
	}
}

func TestLoadRuleset_ExtendsTables(t *testing.T) {
	// Arrange: a deployment-specific ruleset with an extra exclude
	reader := strings.NewReader(`
kind: ClassifierRules
version: v1
definiteExcludes:
  - /promo/
strongSignals:
  - /news/
mediumSignals:
  - /\w+/\w+
contentKeywords:
  - report
`)

	rs, err := LoadRuleset(reader)
	require.NoError(t, err)
	c, err := New(rs)
	require.NoError(t, err)

	assert.False(t, c.IsArticle("https://example.com/promo/summer-sale-2024", origin))
	assert.True(t, c.IsArticle("https://example.com/news/daily-brief", origin))
}

func TestLoadRuleset_InvalidYAML(t *testing.T) {
	_, err := LoadRuleset(strings.NewReader("definiteExcludes: {not: [a, list"))
	assert.Error(t, err)
}

func TestNew_InvalidPattern(t *testing.T) {
	rs := DefaultRuleset()
	rs.StrongSignals = append(rs.StrongSignals, "([")

	_, err := New(rs)
	assert.Error(t, err)
}
