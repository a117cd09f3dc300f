package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/cart (200 OK)
// POST v1/cart/items JSON {"product_id", "quantity"?} (200 OK, 400 Bad request, 404 Not found)
// PATCH v1/cart/items/{id} JSON {"quantity"} (200 OK, 400 Bad request)
// DELETE v1/cart/items/{id} (200 OK)
// DELETE v1/cart (200 OK)

type CartHandler struct {
	cart     port.Cart
	products port.ProductsReader
}

func RegisterCart(
	mux *http.ServeMux, cart port.Cart, products port.ProductsReader,
) {
	h := CartHandler{cart, products}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.AddItem)
	mux.HandleFunc("PATCH /v1/cart/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.RemoveItem)
	mux.HandleFunc("DELETE /v1/cart", h.ClearCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	writeJSON(slog.With("op", op), w, http.StatusOK, h.cart.State())
}

func (h CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.AddItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(log, w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	if req.ProductID.IsZero() {
		writeError(log, w, http.StatusBadRequest, "product_id is required")
		return
	}

	quantity := domain.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		writeError(
			log, w, http.StatusBadRequest, "quantity must be at least 1",
		)
		return
	}

	p, ok := h.products.GetProduct(r.Context(), req.ProductID)
	if !ok {
		writeError(log, w, http.StatusNotFound, "product not found")
		return
	}

	h.cart.AddToCart(r.Context(), p, quantity)
	log.Info("added to cart", "productID", p.ID, "quantity", quantity)
	writeJSON(log, w, http.StatusOK, h.cart.State())
}

func (h CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.UpdateItem"
	log := slog.With("op", op)

	var req UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(log, w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if req.Quantity == nil {
		writeError(log, w, http.StatusBadRequest, "quantity is required")
		return
	}

	id := domain.ParseProductID(r.PathValue("id"))
	h.cart.UpdateQuantity(r.Context(), id, *req.Quantity)
	writeJSON(log, w, http.StatusOK, h.cart.State())
}

func (h CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.RemoveItem"
	log := slog.With("op", op)

	id := domain.ParseProductID(r.PathValue("id"))
	h.cart.RemoveFromCart(r.Context(), id)
	writeJSON(log, w, http.StatusOK, h.cart.State())
}

func (h CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.ClearCart"
	log := slog.With("op", op)

	h.cart.ClearCart(r.Context())
	writeJSON(log, w, http.StatusOK, h.cart.State())
}
