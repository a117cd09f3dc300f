package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	ps := []domain.Product{
		{ID: "1", Category: "a", Price: decimal.RequireFromString("3"), Stock: 2},
		{ID: "2", Category: "b", Price: decimal.RequireFromString("1"), Stock: 50},
	}
	f := new(MockProductsFetcher)
	f.On("FetchProducts", mock.Anything).Return(ps, nil)
	catalog := service.NewCatalog(f)

	cart, st := newTestCart(t)
	checkout := service.NewCheckout(cart, st)
	dashboard := service.NewDashboard(catalog, checkout)

	d := dashboard.Summary(t.Context())
	assert.Equal(t, 2, d.TotalProducts)
	assert.Equal(t, 2, d.Categories)
	require.Len(t, d.LowStock, 1)
	assert.True(t, decimal.RequireFromString("56").Equal(d.InventoryValue))
	assert.Nil(t, d.LastOrder)

	cart.AddToCart(t.Context(), ps[0], 1)
	order, err := checkout.PlaceOrder(t.Context(), validContact)
	require.NoError(t, err)

	d = dashboard.Summary(t.Context())
	require.NotNil(t, d.LastOrder)
	assert.Equal(t, order.ID, d.LastOrder.ID)
}
