package service_test

import (
	"errors"
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	ps := []domain.Product{
		{ID: "1", Title: "Phone", Category: "smartphones"},
		{ID: "2", Title: "Lamp", Description: "desk light", Category: "home"},
		{ID: "3", Title: "Desk", Category: "home"},
	}

	t.Run("List", func(t *testing.T) {
		f := new(MockProductsFetcher)
		f.On("FetchProducts", mock.Anything).Return(ps, nil)

		c := service.NewCatalog(f)
		assert.Len(t, c.ListProducts(t.Context()), 3)
		assert.Equal(t,
			[]string{"smartphones", "home"}, c.Categories(t.Context()),
		)
	})

	t.Run("ListFailsSoft", func(t *testing.T) {
		f := new(MockProductsFetcher)
		f.On("FetchProducts", mock.Anything).
			Return(nil, errors.New("network down"))

		c := service.NewCatalog(f)
		got := c.ListProducts(t.Context())
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Empty(t, c.Categories(t.Context()))
	})

	t.Run("Search", func(t *testing.T) {
		f := new(MockProductsFetcher)
		f.On("FetchProducts", mock.Anything).Return(ps, nil)

		got := service.NewCatalog(f).SearchProducts(
			t.Context(), domain.ProductQuery{Search: "DESK", Category: "home"},
		)
		require.Len(t, got, 2)
		assert.Equal(t, domain.ProductID("2"), got[0].ID)
		assert.Equal(t, domain.ProductID("3"), got[1].ID)
	})

	t.Run("Get", func(t *testing.T) {
		f := new(MockProductsFetcher)
		f.On("FetchProduct", mock.Anything, domain.ProductID("1")).
			Return(ps[0], nil)
		f.On("FetchProduct", mock.Anything, domain.ProductID("9")).
			Return(domain.Product{}, domain.ErrProductNotFound)

		c := service.NewCatalog(f)
		p, ok := c.GetProduct(t.Context(), "1")
		require.True(t, ok)
		assert.Equal(t, "Phone", p.Title)

		_, ok = c.GetProduct(t.Context(), "9")
		assert.False(t, ok)

		_, ok = c.GetProduct(t.Context(), "")
		assert.False(t, ok)
		f.AssertNotCalled(t, "FetchProduct", mock.Anything, domain.ProductID(""))
	})
}
