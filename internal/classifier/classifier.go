// Package classifier decides whether a discovered hyperlink is likely an
// article page. It is a pure predicate over URL strings: no I/O, same verdict
// for the same input given the same ruleset.
package classifier

import (
	"net/url"
	"strings"
)

// Classifier applies the staged heuristic: hard excludes, then strong
// includes, then soft structural signals. The ordering is load-bearing: a URL
// matching both an exclude and a strong signal must be rejected.
type Classifier struct {
	rules *compiledRules
}

// New compiles the ruleset into a Classifier.
func New(rs Ruleset) (*Classifier, error) {
	rules, err := rs.compile()
	if err != nil {
		return nil, err
	}
	return &Classifier{rules: rules}, nil
}

// MustNew is New with the default ruleset, panicking on compile failure.
// The default tables are covered by tests, so the panic path is unreachable
// outside of a broken edit.
func MustNew() *Classifier {
	c, err := New(DefaultRuleset())
	if err != nil {
		panic(err)
	}
	return c
}

// IsArticle reports whether rawURL looks like an article link relative to the
// seed page originURL. Cross-domain links are never candidates.
func (c *Classifier) IsArticle(rawURL, originURL string) bool {
	if rawURL == "" || strings.HasPrefix(rawURL, "#") {
		return false
	}

	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") {
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	origin, err := url.Parse(originURL)
	if err != nil {
		return false
	}
	if parsed.Host == "" || parsed.Host != origin.Host {
		return false
	}

	path := strings.ToLower(parsed.Path)

	for _, re := range c.rules.excludes {
		if re.MatchString(path) {
			return false
		}
	}

	for _, re := range c.rules.strong {
		if re.MatchString(path) {
			return true
		}
	}

	hasMedium := false
	for _, re := range c.rules.medium {
		if re.MatchString(path) {
			hasMedium = true
			break
		}
	}

	hasKeyword := false
	for _, kw := range c.rules.keywords {
		if strings.Contains(path, kw) {
			hasKeyword = true
			break
		}
	}

	// Homepage and category links rarely have deep paths; without a keyword
	// there is nothing suggesting content behind them.
	if countSegments(path) < 2 && !hasKeyword {
		return false
	}

	// Long query strings are tracking or filter links, not articles.
	if parsed.RawQuery != "" && strings.Count(parsed.RawQuery, "&")+1 > 3 {
		return false
	}

	return hasMedium || hasKeyword
}

func countSegments(path string) int {
	n := 0
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			n++
		}
	}
	return n
}
