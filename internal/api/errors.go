package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/fpv-storefront/internal/auth"
	"github.com/example/fpv-storefront/internal/command"
	"github.com/example/fpv-storefront/internal/domain/cart"
	"github.com/example/fpv-storefront/internal/domain/drawer"
	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/session"
	"go.uber.org/zap"
)

var errInvalidBody = errors.New("invalid request body")

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, cart.ErrInvalidProduct),
		errors.Is(err, cart.ErrInvalidPrice),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, drawer.ErrUnknownTab),
		errors.Is(err, command.ErrTitleRequired),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, session.ErrNotFavorite):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError responds with the mapped status. Checkout form errors carry
// per-field messages; unexpected errors are logged and hidden.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validation *order.ValidationError
	if errors.As(err, &validation) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "invalid checkout form",
			"fields": validation.Fields,
		})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		respondJSONError(w, "internal server error", status)
		return
	}
	respondJSONError(w, err.Error(), status)
}
