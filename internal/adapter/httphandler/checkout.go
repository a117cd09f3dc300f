package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/checkout JSON {"name", "email", "address", "phone"} (201 Created, 400 Bad request, 409 Conflict)
// GET v1/orders/last (200 OK, 404 Not found)

type CheckoutHandler struct {
	orders port.OrderPlacer
}

func RegisterCheckout(mux *http.ServeMux, orders port.OrderPlacer) {
	h := CheckoutHandler{orders}
	mux.HandleFunc("POST /v1/checkout", h.PlaceOrder)
	mux.HandleFunc("GET /v1/orders/last", h.LastOrder)
}

func (h CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.PlaceOrder"
	log := slog.With("op", op)

	var req CheckoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(log, w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.toDomain())
	if err != nil {
		var cerr domain.ContactError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			w.Header().Set("Location", "/v1/cart")
			writeError(log, w, http.StatusConflict, "cart is empty")
		case errors.As(err, &cerr):
			writeError(
				log, w, http.StatusBadRequest,
				"invalid contact", cerr.Problems...,
			)
		default:
			writeError(
				log, w, http.StatusInternalServerError,
				"failed to place order",
			)
			log.Error("failed to place order", "err", err)
		}
		return
	}

	w.Header().Set("Location", "/v1/orders/last")
	writeJSON(log, w, http.StatusCreated, order)
}

func (h CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutHandler.LastOrder"
	log := slog.With("op", op)

	order, ok := h.orders.LastOrder(r.Context())
	if !ok {
		writeError(log, w, http.StatusNotFound, "no order found")
		return
	}
	writeJSON(log, w, http.StatusOK, order)
}
