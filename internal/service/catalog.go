package service

import (
	"sort"
	"strings"

	"github.com/liliang-cn/jogjachat/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog is the stub assistant's product table
type Catalog struct {
	products []domain.Product
	printer  *message.Printer
}

// NewCatalog creates a catalog over products
func NewCatalog(products []domain.Product) *Catalog {
	return &Catalog{
		products: products,
		printer:  message.NewPrinter(language.Indonesian),
	}
}

// DefaultCatalog returns the souvenir shop's products
func DefaultCatalog() *Catalog {
	return NewCatalog([]domain.Product{
		{Key: "bakpia", Name: "Bakpia Pathok", Description: "kue bulat berisi kacang hijau, cokelat atau keju", Price: 35000, Bestseller: true},
		{Key: "gudeg", Name: "Gudeg Kaleng", Description: "nangka muda dimasak santan dan gula jawa, tahan sampai setahun", Price: 45000, Bestseller: true},
		{Key: "geplak", Name: "Geplak Bantul", Description: "manisan kelapa parut warna-warni", Price: 20000},
		{Key: "yangko", Name: "Yangko", Description: "kue kenyal dari tepung ketan dengan isian kacang", Price: 18000},
		{Key: "salak pondoh", Name: "Salak Pondoh", Description: "salak manis dari lereng Merapi", Price: 25000},
		{Key: "dagadu", Name: "Kaos Dagadu", Description: "kaos dengan plesetan khas Jogja", Price: 95000, Bestseller: true},
		{Key: "batik", Name: "Batik Tulis", Description: "kain batik motif keraton yang digambar tangan", Price: 150000},
		{Key: "cokelat monggo", Name: "Cokelat Monggo", Description: "cokelat premium buatan Kotagede", Price: 40000},
		{Key: "wedang uwuh", Name: "Wedang Uwuh", Description: "minuman rempah seduh dengan secang dan jahe", Price: 15000},
		{Key: "jadah tempe", Name: "Jadah Tempe", Description: "ketan gurih dengan bacem tempe dari Kaliurang", Price: 22000},
	})
}

// Products returns all products in catalog order
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product{}, c.products...)
}

// Find returns the products named in text, in the order they appear
func (c *Catalog) Find(text string) []domain.Product {
	lower := strings.ToLower(text)

	type hit struct {
		at      int
		product domain.Product
	}
	var hits []hit
	for _, p := range c.products {
		if i := strings.Index(lower, p.Key); i >= 0 {
			hits = append(hits, hit{at: i, product: p})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	found := make([]domain.Product, 0, len(hits))
	for _, h := range hits {
		found = append(found, h.product)
	}
	return found
}

// Cheapest returns up to n products ordered by ascending price
func (c *Catalog) Cheapest(n int) []domain.Product {
	sorted := c.Products()
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Bestsellers returns the products flagged as best sellers
func (c *Catalog) Bestsellers() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Bestseller {
			out = append(out, p)
		}
	}
	return out
}

// FormatPrice renders a rupiah amount with Indonesian digit grouping
func (c *Catalog) FormatPrice(amount int) string {
	return c.printer.Sprintf("Rp %d", amount)
}
