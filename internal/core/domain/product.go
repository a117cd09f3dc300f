package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// A ProductID is the canonical string form of a catalog product identifier.
//
// Catalog ids arrive as JSON numbers while path parameters and older
// snapshots carry them as strings, so every id is normalized once here
// and compared as a plain string afterwards.
type ProductID string

// ParseProductID normalizes an id received as text.
func ParseProductID(s string) ProductID {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return ProductID(d.String())
	}
	return ProductID(s)
}

func (id ProductID) String() string {
	return string(id)
}

func (id ProductID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts both numeric and string ids.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	const op = "ProductID.UnmarshalJSON"

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		*id = ParseProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	*id = ParseProductID(n.String())
	return nil
}

type Product struct {
	ID                 ProductID       `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Brand              string          `json:"brand"`
	Thumbnail          string          `json:"thumbnail"`
	Images             []string        `json:"images"`
	Price              decimal.Decimal `json:"price"`
	Stock              int             `json:"stock"`
	Rating             float64         `json:"rating"`
	DiscountPercentage float64         `json:"discountPercentage"`
}

// LowStockThreshold is the stock level at or below which a product
// is reported on the admin dashboard.
const LowStockThreshold = 5

func (p Product) LowStock() bool {
	return p.Stock <= LowStockThreshold
}

// A ProductQuery narrows a product listing.
//
// Search is matched case-insensitively against the title and description,
// Category must match exactly. Empty fields match everything.
type ProductQuery struct {
	Search   string
	Category string
}

func (q ProductQuery) IsZero() bool {
	return q.Search == "" && q.Category == ""
}

func (q ProductQuery) Match(p Product) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}

	if q.Search == "" {
		return true
	}

	term := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

func (q ProductQuery) Filter(ps []Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if q.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories of ps in first-seen order.
func Categories(ps []Product) []string {
	seen := make(map[string]struct{}, len(ps))
	out := make([]string, 0)
	for _, p := range ps {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
