package service

import (
	"context"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsReader = (*Catalog)(nil)

// A Catalog reads products from the remote catalog and fails soft:
// errors are logged and turned into empty results.
type Catalog struct {
	fetcher port.ProductsFetcher
}

func NewCatalog(fetcher port.ProductsFetcher) Catalog {
	return Catalog{fetcher}
}

func (c Catalog) ListProducts(ctx context.Context) []domain.Product {
	const op = "Catalog.ListProducts"

	ps, err := c.fetcher.FetchProducts(ctx)
	if err != nil {
		slog.Error("failed to fetch products", "op", op, "err", err)
		return []domain.Product{}
	}
	if ps == nil {
		return []domain.Product{}
	}
	return ps
}

func (c Catalog) GetProduct(
	ctx context.Context, id domain.ProductID,
) (domain.Product, bool) {
	const op = "Catalog.GetProduct"
	log := slog.With("op", op, "productID", id)

	if id.IsZero() {
		return domain.Product{}, false
	}

	p, err := c.fetcher.FetchProduct(ctx, id)
	if err != nil {
		log.Warn("failed to fetch product", "err", err)
		return domain.Product{}, false
	}
	return p, true
}

func (c Catalog) SearchProducts(
	ctx context.Context, q domain.ProductQuery,
) []domain.Product {
	return q.Filter(c.ListProducts(ctx))
}

func (c Catalog) Categories(ctx context.Context) []string {
	return domain.Categories(c.ListProducts(ctx))
}
