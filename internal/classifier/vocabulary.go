package classifier

import "github.com/liliang-cn/jogjachat/internal/domain"

// InterestRule maps a set of trigger terms to an interest tag
type InterestRule struct {
	Tag   string
	Terms []string
}

// Vocabulary is the keyword table the classifier matches replies against.
// Products and interest terms are matched as lower-case substrings; price
// and comparison markers are case-insensitive regular expressions.
type Vocabulary struct {
	Products          []string
	Interests         []InterestRule
	PriceMarkers      []string
	ComparisonMarkers []string
	Suggestions       map[domain.Context][]string
}

// DefaultVocabulary returns the souvenir shop's table
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Products: []string{
			"bakpia", "gudeg", "geplak", "yangko", "salak pondoh",
			"dagadu", "batik", "cokelat monggo", "wedang uwuh", "jadah tempe",
		},
		Interests: []InterestRule{
			{Tag: domain.InterestBudget, Terms: []string{"murah", "hemat", "terjangkau", "budget", "diskon", "promo"}},
			{Tag: domain.InterestGift, Terms: []string{"hadiah", "kado", "buah tangan", "souvenir", "untuk keluarga"}},
		},
		PriceMarkers: []string{
			`\bharga`,
			`\brp\.?\s*\d`,
			`\brupiah\b`,
			`\bidr\s*\d`,
		},
		ComparisonMarkers: []string{
			`\batau\b`,
			`\b(?:di)?bandingkan\b`,
			`\bperbandingan\b`,
			`\bvs\b`,
		},
		Suggestions: map[domain.Context][]string{
			domain.ContextWelcome: {
				"Apa saja oleh-oleh yang ada?",
				"Apa oleh-oleh paling laris?",
				"Apa yang khas dari Gudeg Jogja?",
			},
			domain.ContextAfterProductInfo: {
				"Ada pilihan yang lebih murah?",
				"Bandingkan dengan oleh-oleh lain",
				"Berapa lama daya tahannya?",
			},
			domain.ContextAfterComparison: {
				"Mana yang paling direkomendasikan?",
				"Mana yang cocok untuk hadiah?",
				"Berapa harga masing-masing?",
			},
			domain.ContextBudgetConscious: {
				"Oleh-oleh di bawah Rp 30.000?",
				"Ada paket hemat?",
				"Mana yang paling murah?",
			},
		},
	}
}
