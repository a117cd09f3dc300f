package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const OrderSnapshotKey = "lastOrder"

var _ port.OrderPlacer = (*Checkout)(nil)

type CheckoutOpt func(*Checkout)

// PublisherOpt sends every placed order to p.
func PublisherOpt(p port.OrderPublisher) CheckoutOpt {
	return func(c *Checkout) {
		c.publisher = p
	}
}

// ClockOpt replaces the order timestamp source.
func ClockOpt(now func() time.Time) CheckoutOpt {
	return func(c *Checkout) {
		c.now = now
	}
}

// IDOpt replaces the order id generator.
func IDOpt(newID func() uuid.UUID) CheckoutOpt {
	return func(c *Checkout) {
		c.newID = newID
	}
}

// A Checkout turns the current cart into an order snapshot.
type Checkout struct {
	cart      port.Cart
	storage   port.SnapshotStorage
	publisher port.OrderPublisher
	validate  *validator.Validate
	now       func() time.Time
	newID     func() uuid.UUID
}

func NewCheckout(
	cart port.Cart, storage port.SnapshotStorage, opts ...CheckoutOpt,
) Checkout {
	c := Checkout{
		cart:     cart,
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// PlaceOrder snapshots the cart, writes the order confirmation and
// clears the cart.
//
// The cart is left untouched when the cart is empty, the contact is
// invalid or the confirmation can not be written.
func (c Checkout) PlaceOrder(
	ctx context.Context, contact domain.Contact,
) (domain.Order, error) {
	const op = "Checkout.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var order domain.Order
	err := c.cart.Checkout(ctx, func(cart domain.CartState) error {
		if cart.IsEmpty() {
			return domain.ErrEmptyCart
		}

		if err := c.validateContact(contact); err != nil {
			return err
		}

		order = domain.NewOrder(c.newID(), contact, cart, c.now())

		data, err := json.Marshal(order)
		if err != nil {
			return err
		}

		if err := c.storage.Set(ctx, OrderSnapshotKey, data); err != nil {
			return fmt.Errorf("failed to write order: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(
		"order placed",
		"orderID", order.ID,
		"items", len(order.Items),
		"total", order.Total,
	)

	c.publish(ctx, order)
	return order, nil
}

// LastOrder reads back the most recent order confirmation.
func (c Checkout) LastOrder(ctx context.Context) (domain.Order, bool) {
	const op = "Checkout.LastOrder"
	log := slog.With("op", op)

	data, err := c.storage.Get(ctx, OrderSnapshotKey)
	if err != nil {
		if !errors.Is(err, port.ErrNotFound) {
			log.Error("failed to read order", "err", err)
		}
		return domain.Order{}, false
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		log.Warn("order snapshot discarded", "err", err)
		return domain.Order{}, false
	}
	return order, true
}

func (c Checkout) validateContact(contact domain.Contact) error {
	err := c.validate.Struct(contact)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, contactFieldMessage(fe))
	}
	return domain.ContactError{Problems: problems}
}

func contactFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		return "name must be at least 2 characters"
	case "Email":
		return "please enter a valid email"
	case "Address":
		return "please enter a complete address"
	case "Phone":
		return "please enter a valid phone number"
	default:
		return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
	}
}

func (c Checkout) publish(ctx context.Context, order domain.Order) {
	const op = "Checkout.publish"

	if c.publisher == nil {
		return
	}

	if err := c.publisher.PublishOrder(ctx, order); err != nil {
		slog.Error(
			"failed to publish order",
			"op", op, "orderID", order.ID, "err", err,
		)
	}
}
