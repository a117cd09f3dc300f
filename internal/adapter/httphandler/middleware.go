package httphandler

import (
	"log/slog"
	"mime"
	"net/http"
)

// AllowJSON rejects request bodies that are not JSON.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// RequireAdmin answers 401 unless an admin session is active.
func (h AdminHandler) RequireAdmin(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		const op = "AdminHandler.RequireAdmin"

		if err := h.auth.Authorize(r.Context()); err != nil {
			log := slog.With("op", op)
			writeError(log, w, http.StatusUnauthorized, "unauthorized")
			log.Warn("rejected", "path", r.URL.Path, "err", err)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}
