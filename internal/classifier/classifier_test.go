package classifier

import (
	"testing"

	"github.com/liliang-cn/jogjachat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initial() State {
	return State{Stats: domain.NewStats(), Context: domain.ContextWelcome}
}

func TestClassify_ProductInfo(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(initial(), "Harga bakpia Rp 25000")

	assert.Equal(t, []string{"bakpia"}, res.Stats.ProductsDiscussed)
	assert.Equal(t, domain.ContextAfterProductInfo, res.Context)
	assert.Equal(t, DefaultVocabulary().Suggestions[domain.ContextAfterProductInfo], res.Suggestions)
	assert.Equal(t, 1, res.Stats.MessageCount)
}

func TestClassify_PriceBeatsComparison(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(initial(), "Mau bakpia atau geplak? Harganya Rp 15.000 saja")

	assert.Equal(t, domain.ContextAfterProductInfo, res.Context)
	assert.Equal(t, []string{"bakpia", "geplak"}, res.Stats.ProductsDiscussed)
}

func TestClassify_Comparison(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(initial(), "Pilih Gudeg atau Yangko? Keduanya enak.")

	assert.Equal(t, domain.ContextAfterComparison, res.Context)
	assert.Equal(t, []string{"gudeg", "yangko"}, res.Stats.ProductsDiscussed)
}

func TestClassify_BudgetInterest(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(initial(), "Kami punya banyak pilihan yang MURAH dan cocok untuk kado.")

	assert.Equal(t, []string{domain.InterestBudget, domain.InterestGift}, res.Stats.UserInterests)
	assert.Equal(t, domain.ContextBudgetConscious, res.Context)

	// the budget interest persists and keeps steering context
	res = c.Classify(State{Stats: res.Stats, Context: res.Context}, "Silakan mampir ke toko kami.")
	assert.Equal(t, domain.ContextBudgetConscious, res.Context)
}

func TestClassify_UnchangedContext(t *testing.T) {
	c := New(DefaultVocabulary())

	prev := State{Stats: domain.NewStats(), Context: domain.ContextAfterComparison}
	res := c.Classify(prev, "Terima kasih sudah bertanya!")

	assert.Equal(t, domain.ContextAfterComparison, res.Context)
	assert.Equal(t, DefaultVocabulary().Suggestions[domain.ContextAfterComparison], res.Suggestions)
}

func TestClassify_NoDuplicates(t *testing.T) {
	c := New(DefaultVocabulary())

	res := c.Classify(initial(), "bakpia bakpia, hemat")
	res = c.Classify(State{Stats: res.Stats, Context: res.Context}, "Bakpia lagi, tetap hemat")

	assert.Equal(t, []string{"bakpia"}, res.Stats.ProductsDiscussed)
	assert.Equal(t, []string{domain.InterestBudget}, res.Stats.UserInterests)
}

func TestClassify_Deterministic(t *testing.T) {
	c := New(DefaultVocabulary())
	prev := State{
		Stats:   domain.Stats{MessageCount: 5, ProductsDiscussed: []string{"gudeg"}, UserInterests: []string{}},
		Context: domain.ContextAfterComparison,
	}
	reply := "Bakpia atau wedang uwuh? Harga mulai Rp 10.000, cocok untuk hadiah."

	a := c.Classify(prev, reply)
	b := c.Classify(prev, reply)
	require.Equal(t, a, b)

	// inputs are not mutated
	assert.Equal(t, []string{"gudeg"}, prev.Stats.ProductsDiscussed)
}

func TestClassify_CustomVocabulary(t *testing.T) {
	c := New(Vocabulary{
		Products:          []string{"Widget"},
		Interests:         []InterestRule{{Tag: "bulk", Terms: []string{"WHOLESALE"}}},
		PriceMarkers:      []string{`\$\d`},
		ComparisonMarkers: []string{`\bversus\b`},
		Suggestions: map[domain.Context][]string{
			domain.ContextAfterComparison: {"Which one?"},
		},
	})

	res := c.Classify(initial(), "widget versus gadget, wholesale only")

	assert.Equal(t, []string{"widget"}, res.Stats.ProductsDiscussed)
	assert.Equal(t, []string{"bulk"}, res.Stats.UserInterests)
	assert.Equal(t, domain.ContextAfterComparison, res.Context)
	assert.Equal(t, []string{"Which one?"}, res.Suggestions)
}

func TestClassify_MarkerBoundaries(t *testing.T) {
	c := New(DefaultVocabulary())

	tests := []struct {
		name  string
		reply string
		want  domain.Context
	}{
		{"price without space", "Bakpia cuma Rp25.000 per kotak", domain.ContextAfterProductInfo},
		{"price with dot", "Cuma Rp. 25.000 saja", domain.ContextAfterProductInfo},
		{"comparison at line start", "Gudeg enak.\nAtau mau yangko saja?", domain.ContextAfterComparison},
		{"comparison at text start", "Atau coba geplak dulu", domain.ContextAfterComparison},
		{"word ending in rp is not a price", "Ada pensil sharp baru", domain.ContextWelcome},
		{"word containing atau is not a comparison", "Datau menunggu di toko", domain.ContextWelcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(initial(), tt.reply).Context)
		})
	}
}

func TestSuggestions_ReturnsCopy(t *testing.T) {
	c := New(DefaultVocabulary())
	s := c.Suggestions(domain.ContextWelcome)
	s[0] = "diubah"
	assert.Equal(t, "Apa saja oleh-oleh yang ada?", c.Suggestions(domain.ContextWelcome)[0])
}
