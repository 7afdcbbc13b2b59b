package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps a domain error kind onto an HTTP status.
func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	kind := string(domain.KindOf(err))
	if kind == "" {
		kind = "INTERNAL"
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: kind, Message: err.Error()})
}

func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindInvalidCredentials, domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNetwork:
		return http.StatusServiceUnavailable
	case domain.KindServer:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var syntax *json.SyntaxError
		if errors.As(err, &syntax) {
			return domain.NewValidationError("malformed JSON at offset %d", syntax.Offset)
		}
		return domain.NewValidationError("invalid request body: %v", err)
	}
	return nil
}
