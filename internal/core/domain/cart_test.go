package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price string, quantity int) domain.LineItem {
	return domain.LineItem{
		Product: domain.Product{
			ID:    domain.ProductID(id),
			Title: "product " + id,
			Price: decimal.RequireFromString(price),
		},
		Quantity: quantity,
	}
}

func TestNewCartState(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := domain.NewCartState(nil)
		assert.NotNil(t, s.Items)
		assert.True(t, s.IsEmpty())
		assert.True(t, s.Total.IsZero())
		assert.Zero(t, s.ItemCount)
	})

	t.Run("TotalsAreExact", func(t *testing.T) {
		s := domain.NewCartState([]domain.LineItem{
			item("1", "0.1", 1),
			item("2", "0.2", 1),
			item("3", "19.99", 3),
		})
		assert.Equal(t, 5, s.ItemCount)
		assert.True(t, decimal.RequireFromString("60.27").Equal(s.Total))
	})

	t.Run("JSON", func(t *testing.T) {
		s := domain.NewCartState([]domain.LineItem{item("1", "549.99", 2)})
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"items": [{"product": {
				"id": "1", "title": "product 1", "description": "",
				"category": "", "brand": "", "thumbnail": "", "images": null,
				"price": "549.99", "stock": 0, "rating": 0,
				"discountPercentage": 0
			}, "quantity": 2}],
			"total": "1099.98",
			"itemCount": 2
		}`, string(data))
	})
}

func TestCartStateFindAndClone(t *testing.T) {
	s := domain.NewCartState([]domain.LineItem{
		item("1", "1", 1), item("2", "2", 2),
	})
	assert.Equal(t, 1, s.Find("2"))
	assert.Equal(t, -1, s.Find("9"))

	c := s.Clone()
	c.Items[0].Quantity = 100
	assert.Equal(t, 1, s.Items[0].Quantity)
}

func TestLineItemValid(t *testing.T) {
	assert.True(t, item("1", "0", 1).Valid())
	assert.False(t, item("", "1", 1).Valid())
	assert.False(t, item("1", "-1", 1).Valid())
	assert.False(t, item("1", "1", 0).Valid())
}

func TestNewOrder(t *testing.T) {
	cart := domain.NewCartState([]domain.LineItem{
		item("1", "19.99", 3),
		item("2", "0.05", 1),
	})
	id := uuid.New()
	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.FixedZone("X", 3600))

	o := domain.NewOrder(id, domain.Contact{Name: "Jo"}, cart, now)
	assert.Equal(t, id, o.ID)
	assert.Equal(t, "Jo", o.Name)
	assert.True(t, decimal.RequireFromString("60.02").Equal(o.Total))
	assert.True(t, decimal.RequireFromString("6").Equal(o.Tax))
	assert.True(t, decimal.RequireFromString("66.02").Equal(o.GrandTotal))
	assert.Equal(t, time.UTC, o.CreatedAt.Location())
	assert.True(t, now.Equal(o.CreatedAt))
	assert.Len(t, o.Items, 2)
}

func TestContactError(t *testing.T) {
	err := error(domain.ContactError{Problems: []string{"a", "b"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidContact))
	assert.Equal(t, "invalid contact: a; b", err.Error())
}
