package scrape

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/news-scraper/internal/classifier"
	"github.com/DjordjeVuckovic/news-scraper/internal/extract"
)

// Rules bundles every pattern table the pipeline consumes, so a deployment
// can tune link classification, content expansion and extraction from one
// YAML document without code changes.
type Rules struct {
	Kind    string `yaml:"kind"`
	Version string `yaml:"version"`

	Classifier classifier.Ruleset `yaml:"classifier"`
	// LoadMoreSelectors drive the expansion loop, in priority order.
	LoadMoreSelectors []string `yaml:"loadMoreSelectors"`
	// ListingSelectors locate candidate links in the selector-based
	// discovery pass.
	ListingSelectors []string          `yaml:"listingSelectors"`
	Extractor        extract.Selectors `yaml:"extractor"`
}

func DefaultRules() Rules {
	return Rules{
		Kind:              "ScraperRules",
		Version:           "v1",
		Classifier:        classifier.DefaultRuleset(),
		LoadMoreSelectors: nil, // browser defaults apply
		ListingSelectors: []string{
			"article a", "main a", ".content a", ".main a",
			".article a", ".post a", ".news a", ".blog a",
			".story a", ".article-item a",
		},
		Extractor: extract.DefaultSelectors(),
	}
}

// LoadRules decodes a ScraperRules YAML document. Empty sections fall back
// to the built-in tables.
func LoadRules(r io.Reader) (Rules, error) {
	rules := DefaultRules()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&rules); err != nil {
		return Rules{}, fmt.Errorf("failed to decode scraper rules: %w", err)
	}
	return rules, nil
}
