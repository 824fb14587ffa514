// Package extract pulls structured article fields out of rendered HTML
// without knowing the page template. Cheap, high-precision metadata lookups
// (og:*/twitter:* tags) run before structural heuristics.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/DjordjeVuckovic/news-scraper/internal/domain"
)

const (
	minTitleLength = 5
	minBodyLength  = 100
)

var urlDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`),
	regexp.MustCompile(`/(\d{4})-(\d{2})-(\d{2})`),
	regexp.MustCompile(`/(\d{4})/(\d{2})/`),
	regexp.MustCompile(`/(\d{4})-(\d{2})`),
}

// Selectors are the template-agnostic selector tables. Deployments can widen
// them through the scraper rules file.
type Selectors struct {
	// TitleClasses is the common title-class fallback selector.
	TitleClasses string `yaml:"titleClasses"`
	// DateClasses is the common date-class fallback selector.
	DateClasses string `yaml:"dateClasses"`
	// NoiseElements are removed from the working copy before body extraction.
	NoiseElements string `yaml:"noiseElements"`
	// ContentPattern matches class/id values of likely body containers.
	ContentPattern string `yaml:"contentPattern"`
	// ImageContainers locate a hero image inside content areas.
	ImageContainers string `yaml:"imageContainers"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		TitleClasses:    ".title, .headline, .post-title, .article-title, .entry-title",
		DateClasses:     ".date, .published, .post-date, .article-date, .timestamp",
		NoiseElements:   "script, style, nav, header, footer, aside, .sidebar, .menu, .navigation, .comments, .ads",
		ContentPattern:  `(?i)content|article|post|entry|main`,
		ImageContainers: "article img, .content img, .post img, .article img",
	}
}

// Extractor applies per-field strategy chains. It never fails: total
// extraction failure yields sentinel values, not an error.
type Extractor struct {
	sel       Selectors
	contentRe *regexp.Regexp
}

func New(sel Selectors) (*Extractor, error) {
	contentRe, err := regexp.Compile(sel.ContentPattern)
	if err != nil {
		return nil, err
	}
	return &Extractor{sel: sel, contentRe: contentRe}, nil
}

func MustNew() *Extractor {
	e, err := New(DefaultSelectors())
	if err != nil {
		panic(err)
	}
	return e
}

// Extract returns best-effort article fields for the page at pageURL.
// Content hash and discovery timestamp are the orchestrator's concern.
func (e *Extractor) Extract(renderedHTML, pageURL string) domain.ArticleRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return domain.ArticleRecord{
			Title:     domain.TitleExtractErr,
			SourceURL: pageURL,
		}
	}

	record := domain.ArticleRecord{
		Title:       e.extractTitle(doc),
		PublishDate: e.extractDate(doc, pageURL),
		ImageURL:    e.extractImage(doc, pageURL),
		SourceURL:   pageURL,
	}
	// Body extraction mutates the tree, so it runs last.
	record.BodyText = e.extractBody(doc)

	return record
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	candidates := []func() string{
		func() string { return metaContent(doc, `meta[property='og:title']`) },
		func() string { return metaContent(doc, `meta[name='twitter:title']`) },
		func() string { return doc.Find("h1").First().Text() },
		func() string { return doc.Find(e.sel.TitleClasses).First().Text() },
		func() string { return doc.Find("title").First().Text() },
	}

	for _, candidate := range candidates {
		title := normalizeSpace(candidate())
		if len(title) > minTitleLength {
			return title
		}
	}
	return domain.TitleNotFound
}

func (e *Extractor) extractDate(doc *goquery.Document, pageURL string) string {
	candidates := []func() string{
		func() string {
			datetime, _ := doc.Find("time[datetime]").First().Attr("datetime")
			return datetime
		},
		func() string { return metaContent(doc, `meta[property='article:published_time']`) },
		func() string { return metaContent(doc, `meta[name='pubdate']`) },
		func() string { return doc.Find(e.sel.DateClasses).First().Text() },
	}

	for _, candidate := range candidates {
		if date := strings.TrimSpace(candidate()); date != "" {
			return date
		}
	}

	// Many templates carry the date only in the URL path.
	for _, re := range urlDatePatterns {
		if m := re.FindStringSubmatch(pageURL); m != nil {
			return strings.Join(m[1:], "-")
		}
	}

	return ""
}

func (e *Extractor) extractBody(doc *goquery.Document) string {
	doc.Find(e.sel.NoiseElements).Remove()

	containers := []func() *goquery.Selection{
		func() *goquery.Selection { return e.findContentDiv(doc) },
		func() *goquery.Selection { return doc.Find("article").First() },
		func() *goquery.Selection { return doc.Find("main").First() },
		func() *goquery.Selection { return doc.Find("[role='main']").First() },
	}

	for _, container := range containers {
		sel := container()
		if sel == nil || sel.Length() == 0 {
			continue
		}
		if body := collectText(sel.Find("p, h1, h2, h3, h4, h5, h6, li")); len(body) > minBodyLength {
			return body
		}
	}

	if body := collectText(doc.Find("p")); len(body) > minBodyLength {
		return body
	}
	return domain.BodyNotFound
}

func (e *Extractor) findContentDiv(doc *goquery.Document) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		if e.contentRe.MatchString(class) || e.contentRe.MatchString(id) {
			found = s
			return false
		}
		return true
	})
	return found
}

func (e *Extractor) extractImage(doc *goquery.Document, pageURL string) string {
	candidates := []func() string{
		func() string { return metaContent(doc, `meta[property='og:image']`) },
		func() string { return metaContent(doc, `meta[name='twitter:image']`) },
		func() string { return imageSrc(doc.Find(e.sel.ImageContainers).First()) },
		func() string { return imageSrc(doc.Find("img").First()) },
	}

	for _, candidate := range candidates {
		if src := strings.TrimSpace(candidate()); src != "" {
			return resolveURL(pageURL, src)
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return content
}

func imageSrc(sel *goquery.Selection) string {
	if src, ok := sel.Attr("src"); ok && src != "" {
		return src
	}
	src, _ := sel.Attr("data-src")
	return src
}

func collectText(sel *goquery.Selection) string {
	var lines []string
	sel.Each(func(i int, s *goquery.Selection) {
		if text := normalizeSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
