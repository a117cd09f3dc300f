package domain

import "github.com/shopspring/decimal"

// DefaultQuantity is added when a caller does not name a quantity.
const DefaultQuantity = 1

type LineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal is the line price times the quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Valid reports whether li has the shape of a cart line item.
func (li LineItem) Valid() bool {
	return !li.Product.ID.IsZero() &&
		!li.Product.Price.IsNegative() &&
		li.Quantity >= 1
}

// A CartState is the list of line items with its derived totals.
//
// Total and ItemCount are never set on their own: build the state
// with [NewCartState] so both are recomputed from the full item list.
type CartState struct {
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func NewCartState(items []LineItem) CartState {
	if items == nil {
		items = []LineItem{}
	}
	total, count := CalculateTotals(items)
	return CartState{Items: items, Total: total, ItemCount: count}
}

func EmptyCartState() CartState {
	return NewCartState(nil)
}

func CalculateTotals(items []LineItem) (total decimal.Decimal, itemCount int) {
	total = decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
		itemCount += item.Quantity
	}
	return total, itemCount
}

func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the index of the line item for id or -1.
func (s CartState) Find(id ProductID) int {
	for i, item := range s.Items {
		if item.Product.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no item storage with s.
func (s CartState) Clone() CartState {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return CartState{Items: items, Total: s.Total, ItemCount: s.ItemCount}
}
