// Package classifier derives the conversational context and the suggestion
// set from an assistant reply.
package classifier

import (
	"regexp"
	"strings"

	"github.com/liliang-cn/jogjachat/internal/domain"
)

// State is the classifier input carried over from the previous reply
type State struct {
	Stats   domain.Stats
	Context domain.Context
}

// Result is the classifier output
type Result struct {
	Stats       domain.Stats
	Context     domain.Context
	Suggestions []string
}

// Classifier matches replies against a Vocabulary. It holds no mutable
// state; Classify is a pure function of its arguments.
type Classifier struct {
	vocab      Vocabulary
	price      *regexp.Regexp
	comparison *regexp.Regexp
}

// New creates a classifier over vocab. Terms are lower-cased and markers
// compiled once here; it panics if a marker is not a valid expression.
func New(vocab Vocabulary) *Classifier {
	v := Vocabulary{
		Products:    lowerAll(vocab.Products),
		Suggestions: make(map[domain.Context][]string, len(vocab.Suggestions)),
	}
	for _, rule := range vocab.Interests {
		v.Interests = append(v.Interests, InterestRule{Tag: rule.Tag, Terms: lowerAll(rule.Terms)})
	}
	for ctx, list := range vocab.Suggestions {
		v.Suggestions[ctx] = append([]string{}, list...)
	}
	return &Classifier{
		vocab:      v,
		price:      compileMarkers(vocab.PriceMarkers),
		comparison: compileMarkers(vocab.ComparisonMarkers),
	}
}

// Classify updates statistics from reply and selects the next context.
// The first matching rule wins: a price marker, then a comparison marker,
// then an accumulated budget interest. Otherwise the context is unchanged.
func (c *Classifier) Classify(prev State, reply string) Result {
	text := strings.ToLower(reply)
	stats := prev.Stats.Clone()

	for _, product := range c.vocab.Products {
		if product != "" && strings.Contains(text, product) && !stats.HasProduct(product) {
			stats.ProductsDiscussed = append(stats.ProductsDiscussed, product)
		}
	}
	for _, rule := range c.vocab.Interests {
		if containsAny(text, rule.Terms) && !stats.HasInterest(rule.Tag) {
			stats.UserInterests = append(stats.UserInterests, rule.Tag)
		}
	}

	next := prev.Context
	switch {
	case c.price != nil && c.price.MatchString(text):
		next = domain.ContextAfterProductInfo
	case c.comparison != nil && c.comparison.MatchString(text):
		next = domain.ContextAfterComparison
	case stats.HasInterest(domain.InterestBudget):
		next = domain.ContextBudgetConscious
	}
	if next == "" {
		next = domain.ContextWelcome
	}

	return Result{
		Stats:       stats,
		Context:     next,
		Suggestions: c.Suggestions(next),
	}
}

// Suggestions returns a copy of the fixed suggestion list for ctx
func (c *Classifier) Suggestions(ctx domain.Context) []string {
	return append([]string{}, c.vocab.Suggestions[ctx]...)
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// compileMarkers joins patterns into one case-insensitive alternation.
// An empty list never matches.
func compileMarkers(patterns []string) *regexp.Regexp {
	var parts []string
	for _, p := range patterns {
		if p != "" {
			parts = append(parts, "(?:"+p+")")
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?i)" + strings.Join(parts, "|"))
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
