package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const maxRequestBodySize = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(
	log *slog.Logger, w http.ResponseWriter, status int, msg string,
	problems ...string,
) {
	writeJSON(log, w, status, ErrorResponse{Error: msg, Problems: problems})
}
