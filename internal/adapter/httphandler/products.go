package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET v1/products?q=text&category=name (200 OK)
// GET v1/products/{id} (200 OK, 404 Not found)
// GET v1/categories (200 OK)

type ProductsHandler struct {
	products port.ProductsReader
}

func RegisterProducts(mux *http.ServeMux, products port.ProductsReader) {
	h := ProductsHandler{products}
	mux.HandleFunc("GET /v1/products", h.ListProducts)
	mux.HandleFunc("GET /v1/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.Categories)
}

func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op)

	q := domain.ProductQuery{
		Search:   r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	var ps []domain.Product
	if q.IsZero() {
		ps = h.products.ListProducts(r.Context())
	} else {
		ps = h.products.SearchProducts(r.Context(), q)
	}

	writeJSON(log, w, http.StatusOK, ProductsResponse{
		Products: ps,
		Total:    len(ps),
	})
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op)

	id := domain.ParseProductID(r.PathValue("id"))
	p, ok := h.products.GetProduct(r.Context(), id)
	if !ok {
		writeError(log, w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(log, w, http.StatusOK, p)
}

func (h ProductsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.Categories"
	log := slog.With("op", op)

	writeJSON(log, w, http.StatusOK, CategoriesResponse{
		Categories: h.products.Categories(r.Context()),
	})
}
