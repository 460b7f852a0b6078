package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/warung-pos/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/warung-pos/internal/checkout/app"
	txapp "github.com/dwikikusuma/warung-pos/internal/transaction/app"
	"github.com/sony/gobreaker/v2"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// httpStatusFromErr maps service errors to an HTTP status, a stable error
// code and the message shown to the client.
func httpStatusFromErr(err error) (int, string, string) {
	switch {
	case errors.Is(err, cartdomain.ErrInvalidAmount),
		errors.Is(err, cartdomain.ErrInvalidQuantity),
		errors.Is(err, cartdomain.ErrInvalidLineItem),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, txapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, txapp.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, cartdomain.ErrCheckoutInProgress):
		return http.StatusConflict, "CHECKOUT_IN_PROGRESS", err.Error()
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "EMPTY_CART", err.Error()
	case errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "UNAVAILABLE", err.Error()
	case errors.Is(err, checkoutapp.ErrPersistenceFailure):
		return http.StatusServiceUnavailable, "PERSISTENCE_FAILURE", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("err", err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("err", err),
		)
	}
	respondError(w, status, code, msg)
}
