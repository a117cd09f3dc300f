package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var validContact = domain.Contact{
	Name:    "Jo Doe",
	Email:   "jo@example.com",
	Address: "1 Long Street, Springfield",
	Phone:   "5551234567",
}

func TestCheckoutPlaceOrder(t *testing.T) {
	orderID := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fixed := []service.CheckoutOpt{
		service.IDOpt(func() uuid.UUID { return orderID }),
		service.ClockOpt(func() time.Time { return now }),
	}

	t.Run("EmptyCart", func(t *testing.T) {
		cart, st := newTestCart(t)
		checkout := service.NewCheckout(cart, st, fixed...)

		_, err := checkout.PlaceOrder(t.Context(), validContact)
		require.ErrorIs(t, err, domain.ErrEmptyCart)

		_, ok := checkout.LastOrder(t.Context())
		assert.False(t, ok)
	})

	t.Run("InvalidContact", func(t *testing.T) {
		cart, st := newTestCart(t)
		cart.AddToCart(t.Context(), product("1", "A", "5"), 1)
		checkout := service.NewCheckout(cart, st, fixed...)

		_, err := checkout.PlaceOrder(t.Context(), domain.Contact{
			Name: "J", Email: "not-an-email", Address: "short", Phone: "123",
		})
		require.ErrorIs(t, err, domain.ErrInvalidContact)

		var cerr domain.ContactError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{
			"name must be at least 2 characters",
			"please enter a valid email",
			"please enter a complete address",
			"please enter a valid phone number",
		}, cerr.Problems)
		assert.Equal(t, 1, cart.State().ItemCount)
	})

	t.Run("OneInvalidField", func(t *testing.T) {
		cart, st := newTestCart(t)
		cart.AddToCart(t.Context(), product("1", "A", "5"), 1)
		checkout := service.NewCheckout(cart, st, fixed...)

		c := validContact
		c.Email = ""
		_, err := checkout.PlaceOrder(t.Context(), c)

		var cerr domain.ContactError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{"please enter a valid email"}, cerr.Problems)
	})

	t.Run("Placed", func(t *testing.T) {
		cart, st := newTestCart(t)
		cart.AddToCart(t.Context(), product("1", "Phone", "549.99"), 2)
		cart.AddToCart(t.Context(), product("2", "Lamp", "12.5"), 1)

		publisher := new(MockOrderPublisher)
		publisher.On("PublishOrder", mock.Anything, mock.MatchedBy(
			func(o domain.Order) bool { return o.ID == orderID },
		)).Return(nil)

		checkout := service.NewCheckout(
			cart, st, append(fixed, service.PublisherOpt(publisher))...,
		)

		order, err := checkout.PlaceOrder(t.Context(), validContact)
		require.NoError(t, err)

		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, now, order.CreatedAt)
		assert.Equal(t, validContact, order.Contact)
		require.Len(t, order.Items, 2)
		assert.True(t, decimal.RequireFromString("1112.48").Equal(order.Total))
		assert.True(t, decimal.RequireFromString("111.25").Equal(order.Tax))
		assert.True(t,
			decimal.RequireFromString("1223.73").Equal(order.GrandTotal),
		)

		assert.True(t, cart.State().IsEmpty())
		publisher.AssertExpectations(t)

		last, ok := checkout.LastOrder(t.Context())
		require.True(t, ok)
		assert.Equal(t, order.ID, last.ID)
		assert.Equal(t, order.Email, last.Email)
		assert.True(t, order.GrandTotal.Equal(last.GrandTotal))
		assert.True(t, order.CreatedAt.Equal(last.CreatedAt))

		restored := service.NewCartStore(
			t.Context(), st, service.CartSnapshotKey,
		)
		assert.True(t, restored.State().IsEmpty())
	})

	t.Run("PublishFailureIsLogged", func(t *testing.T) {
		cart, st := newTestCart(t)
		cart.AddToCart(t.Context(), product("1", "A", "5"), 1)

		publisher := new(MockOrderPublisher)
		publisher.On("PublishOrder", mock.Anything, mock.Anything).
			Return(errors.New("broker down"))

		checkout := service.NewCheckout(
			cart, st, service.PublisherOpt(publisher),
		)
		_, err := checkout.PlaceOrder(t.Context(), validContact)
		require.NoError(t, err)
		assert.True(t, cart.State().IsEmpty())
	})

	t.Run("OrderWriteFailureKeepsCart", func(t *testing.T) {
		writeErr := errors.New("read-only")
		st := new(MockSnapshotStorage)
		st.On("Get", mock.Anything, service.CartSnapshotKey).
			Return(nil, storage.ErrNotFound)
		st.On("Set", mock.Anything, service.CartSnapshotKey, mock.Anything).
			Return(nil)
		st.On("Set", mock.Anything, service.OrderSnapshotKey, mock.Anything).
			Return(writeErr)

		cart := service.NewCartStore(t.Context(), st, service.CartSnapshotKey)
		cart.AddToCart(t.Context(), product("1", "A", "5"), 3)

		checkout := service.NewCheckout(cart, st, fixed...)
		_, err := checkout.PlaceOrder(t.Context(), validContact)
		require.ErrorIs(t, err, writeErr)
		assert.Equal(t, 3, cart.State().ItemCount)
	})
}

func TestCheckoutLastOrder(t *testing.T) {
	t.Run("Corrupt", func(t *testing.T) {
		cart, st := newTestCart(t)
		require.NoError(t, st.Set(
			t.Context(), service.OrderSnapshotKey, []byte("[]"),
		))

		_, ok := service.NewCheckout(cart, st).LastOrder(t.Context())
		assert.False(t, ok)
	})

	t.Run("SeparateFromCart", func(t *testing.T) {
		cart, st := newTestCart(t)
		cart.AddToCart(t.Context(), product("1", "A", "5"), 1)
		checkout := service.NewCheckout(cart, st)

		_, err := checkout.PlaceOrder(t.Context(), validContact)
		require.NoError(t, err)
		cart.AddToCart(t.Context(), product("2", "B", "1"), 1)

		last, ok := checkout.LastOrder(t.Context())
		require.True(t, ok)
		require.Len(t, last.Items, 1)
		assert.Equal(t, domain.ProductID("1"), last.Items[0].Product.ID)
	})
}

// orderHookStorage runs onSet before every write.
type orderHookStorage struct {
	storage.LocalStorage
	onSet func(key string)
}

func (s orderHookStorage) Set(
	ctx context.Context, key string, value []byte,
) error {
	s.onSet(key)
	return s.LocalStorage.Set(ctx, key, value)
}

func TestCheckoutKeepsConcurrentAdd(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddToCart(t.Context(), product("1", "A", "5"), 1)

	var wg sync.WaitGroup
	orders := orderHookStorage{
		LocalStorage: storage.NewMemoryStorage(),
		onSet: func(key string) {
			if key != service.OrderSnapshotKey {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				cart.AddToCart(context.Background(), product("2", "B", "7"), 1)
			}()
		},
	}
	checkout := service.NewCheckout(cart, orders)

	order, err := checkout.PlaceOrder(t.Context(), validContact)
	require.NoError(t, err)
	wg.Wait()

	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.ProductID("1"), order.Items[0].Product.ID)

	state := cart.State()
	require.Len(t, state.Items, 1)
	assert.Equal(t, domain.ProductID("2"), state.Items[0].Product.ID)
	assert.Equal(t, 1, state.ItemCount)
}

func TestCartStoreCheckoutRejected(t *testing.T) {
	cart, st := newTestCart(t)
	cart.AddToCart(t.Context(), product("1", "A", "5"), 2)

	boom := errors.New("boom")
	err := cart.Checkout(t.Context(), func(s domain.CartState) error {
		assert.Equal(t, 2, s.ItemCount)
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 2, cart.State().ItemCount)

	err = cart.Checkout(t.Context(), func(domain.CartState) error { return nil })
	require.NoError(t, err)
	assert.True(t, cart.State().IsEmpty())

	restored := service.NewCartStore(t.Context(), st, service.CartSnapshotKey)
	assert.True(t, restored.State().IsEmpty())
}
