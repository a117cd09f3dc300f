package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxRate applied on top of the cart total at checkout.
var TaxRate = decimal.RequireFromString("0.1")

// A Contact is the shipping form captured at checkout.
type Contact struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"min=10"`
	Phone   string `json:"phone" validate:"min=10"`
}

// An Order is synthesized once at checkout and never updated.
type Order struct {
	ID uuid.UUID `json:"id"`
	Contact
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func NewOrder(id uuid.UUID, c Contact, cart CartState, now time.Time) Order {
	tax := cart.Total.Mul(TaxRate).Round(2)
	return Order{
		ID:         id,
		Contact:    c,
		Items:      cart.Items,
		Total:      cart.Total,
		Tax:        tax,
		GrandTotal: cart.Total.Add(tax),
		CreatedAt:  now.UTC(),
	}
}
