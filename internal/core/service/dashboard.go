package service

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.DashboardSummarizer = (*Dashboard)(nil)

type Dashboard struct {
	products port.ProductsReader
	orders   port.OrderPlacer
}

func NewDashboard(products port.ProductsReader, orders port.OrderPlacer) Dashboard {
	return Dashboard{products, orders}
}

func (d Dashboard) Summary(ctx context.Context) domain.Dashboard {
	var last *domain.Order
	if order, ok := d.orders.LastOrder(ctx); ok {
		last = &order
	}
	return domain.NewDashboard(d.products.ListProducts(ctx), last)
}
