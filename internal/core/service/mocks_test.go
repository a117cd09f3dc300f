package service_test

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockSnapshotStorage struct {
	mock.Mock
}

func (s *MockSnapshotStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := s.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (s *MockSnapshotStorage) Set(ctx context.Context, key string, value []byte) error {
	args := s.Called(ctx, key, value)
	return args.Error(0)
}

func (s *MockSnapshotStorage) Delete(ctx context.Context, key string) error {
	args := s.Called(ctx, key)
	return args.Error(0)
}

type MockProductsFetcher struct {
	mock.Mock
}

func (f *MockProductsFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	args := f.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (f *MockProductsFetcher) FetchProduct(
	ctx context.Context, id domain.ProductID,
) (domain.Product, error) {
	args := f.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

type MockOrderPublisher struct {
	mock.Mock
}

func (p *MockOrderPublisher) PublishOrder(ctx context.Context, o domain.Order) error {
	args := p.Called(ctx, o)
	return args.Error(0)
}
