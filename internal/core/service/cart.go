package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const CartSnapshotKey = "cart-storage"

var _ port.Cart = (*CartStore)(nil)

// A CartStore owns the cart state of one storefront session.
//
// Every mutation recomputes the totals from the whole item list and
// writes the snapshot before returning. Storage failures are logged
// and never reach the caller.
type CartStore struct {
	mu      sync.Mutex
	key     string
	storage port.SnapshotStorage
	state   domain.CartState
}

// NewCartStore returns a store restored from the snapshot under key.
//
// A missing or unreadable snapshot leaves the cart empty.
func NewCartStore(
	ctx context.Context, storage port.SnapshotStorage, key string,
) *CartStore {
	s := &CartStore{
		key:     key,
		storage: storage,
		state:   domain.EmptyCartState(),
	}
	s.restore(ctx)
	return s
}

func (s *CartStore) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddToCart merges quantity into the line item of p or appends a new one.
//
// An existing line item keeps the product data it was added with.
func (s *CartStore) AddToCart(
	ctx context.Context, p domain.Product, quantity int,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.state.Clone().Items
	if i := s.state.Find(p.ID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, domain.LineItem{Product: p, Quantity: quantity})
	}
	s.commit(ctx, items)
}

func (s *CartStore) RemoveFromCart(ctx context.Context, id domain.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.Product.ID != id {
			items = append(items, item)
		}
	}
	s.commit(ctx, items)
}

// UpdateQuantity sets the quantity of the line item for id to
// max(0, quantity). Line items left without a positive quantity are dropped.
func (s *CartStore) UpdateQuantity(
	ctx context.Context, id domain.ProductID, quantity int,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, 0, len(s.state.Items))
	for _, item := range s.state.Items {
		if item.Product.ID == id {
			item.Quantity = max(0, quantity)
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	s.commit(ctx, items)
}

func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commit(ctx, nil)
}

// Checkout hands a copy of the cart to fn and clears the cart when fn
// returns nil. No other cart operation runs until it returns, so fn must
// not call back into the store.
func (s *CartStore) Checkout(
	ctx context.Context, fn func(domain.CartState) error,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.state.Clone()); err != nil {
		return err
	}
	s.commit(ctx, nil)
	return nil
}

func (s *CartStore) commit(ctx context.Context, items []domain.LineItem) {
	s.state = domain.NewCartState(items)
	s.persist(ctx)
}

func (s *CartStore) persist(ctx context.Context) {
	const op = "CartStore.persist"
	log := slog.With("op", op, "key", s.key)

	data, err := json.Marshal(s.state)
	if err != nil {
		log.Error("failed to encode cart snapshot", "err", err)
		return
	}

	// The change is already applied in memory.
	ctx = context.WithoutCancel(ctx)
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		log.Error("failed to write cart snapshot", "err", err)
	}
}

func (s *CartStore) restore(ctx context.Context) {
	const op = "CartStore.restore"
	log := slog.With("op", op, "key", s.key)

	items, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			log.Debug("no cart snapshot")
			return
		}
		log.Warn("cart snapshot discarded", "err", err)
		return
	}

	s.state = domain.NewCartState(items)
	log.Info(
		"cart restored",
		"items", len(s.state.Items),
		"itemCount", s.state.ItemCount,
	)
}

// load reads the snapshot and keeps the well-formed line items.
//
// Each item is decoded on its own so that one stale entry does not
// discard the whole cart.
func (s *CartStore) load(ctx context.Context) ([]domain.LineItem, error) {
	const op = "CartStore.load"
	log := slog.With("op", op, "key", s.key)

	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snapshot struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.LineItem, 0, len(snapshot.Items))
	for i, raw := range snapshot.Items {
		var item domain.LineItem
		if err := json.Unmarshal(raw, &item); err != nil {
			log.Warn("dropping malformed line item", "index", i, "err", err)
			continue
		}
		if !item.Valid() {
			log.Warn("dropping invalid line item", "index", i)
			continue
		}
		if (domain.CartState{Items: items}).Find(item.Product.ID) >= 0 {
			log.Warn("dropping duplicate line item", "index", i)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
