package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// POST v1/admin/login JSON {"email", "password"} (204 No content, 401 Unauthorized)
// POST v1/admin/logout (204 No content)
// GET v1/admin/dashboard (200 OK, 401 Unauthorized)

type AdminHandler struct {
	auth      port.AdminAuthenticator
	dashboard port.DashboardSummarizer
}

func RegisterAdmin(
	mux *http.ServeMux,
	auth port.AdminAuthenticator,
	dashboard port.DashboardSummarizer,
) {
	h := AdminHandler{auth, dashboard}
	mux.HandleFunc("POST /v1/admin/login", h.Login)
	mux.HandleFunc("POST /v1/admin/logout", h.Logout)
	mux.Handle("GET /v1/admin/dashboard", h.RequireAdmin(
		http.HandlerFunc(h.Dashboard),
	))
}

func (h AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Login"
	log := slog.With("op", op)

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(log, w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(
				log, w, http.StatusUnauthorized, "invalid credentials",
			)
			return
		}
		writeError(log, w, http.StatusInternalServerError, "failed to login")
		log.Error("failed to login", "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Logout"
	log := slog.With("op", op)

	if err := h.auth.Logout(r.Context()); err != nil {
		writeError(log, w, http.StatusInternalServerError, "failed to logout")
		log.Error("failed to logout", "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.Dashboard"
	log := slog.With("op", op)

	writeJSON(log, w, http.StatusOK, h.dashboard.Summary(r.Context()))
}
