package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

var ErrNotFound = errors.New("not found")

// A SnapshotStorage keeps whole serialized snapshots under named keys.
//
// Get reports an absent key with an error matching [ErrNotFound].
type SnapshotStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type ProductsFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
	FetchProduct(context.Context, domain.ProductID) (domain.Product, error)
}

type OrderPublisher interface {
	PublishOrder(context.Context, domain.Order) error
}

type ProductsReader interface {
	ListProducts(context.Context) []domain.Product
	GetProduct(context.Context, domain.ProductID) (domain.Product, bool)
	SearchProducts(context.Context, domain.ProductQuery) []domain.Product
	Categories(context.Context) []string
}

type CartReader interface {
	State() domain.CartState
}

type CartMutator interface {
	AddToCart(ctx context.Context, p domain.Product, quantity int)
	RemoveFromCart(ctx context.Context, id domain.ProductID)
	UpdateQuantity(ctx context.Context, id domain.ProductID, quantity int)
	ClearCart(ctx context.Context)
	// Checkout clears the cart only when fn accepts its snapshot.
	Checkout(ctx context.Context, fn func(domain.CartState) error) error
}

type Cart interface {
	CartReader
	CartMutator
}

type OrderPlacer interface {
	PlaceOrder(context.Context, domain.Contact) (domain.Order, error)
	LastOrder(context.Context) (domain.Order, bool)
}

type AdminAuthenticator interface {
	Login(ctx context.Context, email, password string) error
	Logout(context.Context) error
	Authorize(context.Context) error
}

type DashboardSummarizer interface {
	Summary(context.Context) domain.Dashboard
}
