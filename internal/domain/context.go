package domain

import "slices"

// Context is the classifier's guess at the conversational stage
type Context string

const (
	ContextWelcome          Context = "welcome"
	ContextAfterProductInfo Context = "after_product_info"
	ContextAfterComparison  Context = "after_comparison"
	ContextBudgetConscious  Context = "budget_conscious"
)

// Interest tags recorded in Stats.UserInterests
const (
	InterestBudget = "budget_conscious"
	InterestGift   = "gift_shopping"
)

// Stats holds the derived conversation statistics
type Stats struct {
	MessageCount      int      `json:"messageCount"`
	ProductsDiscussed []string `json:"productsDiscussed"`
	UserInterests     []string `json:"userInterests"`
}

// NewStats returns the statistics of a fresh conversation (the greeting counts as one line)
func NewStats() Stats {
	return Stats{
		MessageCount:      1,
		ProductsDiscussed: []string{},
		UserInterests:     []string{},
	}
}

// Clone returns a deep copy
func (s Stats) Clone() Stats {
	return Stats{
		MessageCount:      s.MessageCount,
		ProductsDiscussed: append([]string{}, s.ProductsDiscussed...),
		UserInterests:     append([]string{}, s.UserInterests...),
	}
}

// HasProduct reports whether name was already recorded
func (s Stats) HasProduct(name string) bool {
	return slices.Contains(s.ProductsDiscussed, name)
}

// HasInterest reports whether tag was already recorded
func (s Stats) HasInterest(tag string) bool {
	return slices.Contains(s.UserInterests, tag)
}
