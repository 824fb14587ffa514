package classifier

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Ruleset holds the pattern tables driving URL classification. The tables are
// configuration, not logic: deployments extend them via a YAML document
// without touching the classifier.
type Ruleset struct {
	Kind    string `yaml:"kind"`
	Version string `yaml:"version"`

	// DefiniteExcludes are matched against the URL path first and always win.
	DefiniteExcludes []string `yaml:"definiteExcludes"`
	// StrongSignals accept a URL outright once excludes have passed.
	StrongSignals []string `yaml:"strongSignals"`
	// MediumSignals are soft structural hints (extension, path depth, slug length).
	MediumSignals []string `yaml:"mediumSignals"`
	// ContentKeywords are content-suggestive words looked up in the path.
	ContentKeywords []string `yaml:"contentKeywords"`
}

// DefaultRuleset returns the built-in tables. They are generic by design:
// nothing in them is specific to one site template.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Kind:    "ClassifierRules",
		Version: "v1",
		DefiniteExcludes: []string{
			`/search`, `/login`, `/register`, `/signup`, `/contact`, `/about`,
			`/privacy`, `/terms`, `/cookie`, `/legal`, `/sitemap`,
			`\.css$`, `\.js$`, `\.pdf$`, `\.doc`, `\.zip$`, `\.xml$`,
			`/feed`, `/rss`, `/tag(?:s)?/`, `/category/`,
			`/author/`, `/user/`, `/admin`,
			`/page/\d+/?$`, `/index\.html?$`,
		},
		StrongSignals: []string{
			`/article`, `/post/`, `/news/`, `/blog/`, `/story/`,
			`/read/`, `/view/`, `/details/`, `/full/`,
			`/\d{4}/\d{2}/\d{2}/`, `/\d{4}/\d{2}/`, `/\d{4}/`,
			`-\d{4}-\d{2}-\d{2}`, `-\d{4}-\d{2}`, `-\d{4}`,
		},
		MediumSignals: []string{
			`\.html?$`, `/\w+/\w+`, `/[^/]{10,}`,
			`/entry/`, `/item/`, `/content/`,
		},
		ContentKeywords: []string{
			"breaking", "exclusive", "report", "analysis", "interview",
			"feature", "opinion", "editorial", "review", "update",
			"announcement", "launch", "release", "study", "research",
		},
	}
}

// LoadRuleset decodes a YAML ruleset from r.
func LoadRuleset(r io.Reader) (Ruleset, error) {
	var rs Ruleset
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&rs); err != nil {
		return Ruleset{}, fmt.Errorf("failed to decode classifier ruleset: %w", err)
	}
	return rs, nil
}

type compiledRules struct {
	excludes []*regexp.Regexp
	strong   []*regexp.Regexp
	medium   []*regexp.Regexp
	keywords []string
}

func (rs Ruleset) compile() (*compiledRules, error) {
	compileAll := func(patterns []string) ([]*regexp.Regexp, error) {
		out := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
			}
			out = append(out, re)
		}
		return out, nil
	}

	excludes, err := compileAll(rs.DefiniteExcludes)
	if err != nil {
		return nil, err
	}
	strong, err := compileAll(rs.StrongSignals)
	if err != nil {
		return nil, err
	}
	medium, err := compileAll(rs.MediumSignals)
	if err != nil {
		return nil, err
	}

	return &compiledRules{
		excludes: excludes,
		strong:   strong,
		medium:   medium,
		keywords: rs.ContentKeywords,
	}, nil
}
