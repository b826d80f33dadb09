// Package respond writes JSON bodies and maps core errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
	"github.com/MrJamesThe3rd/assetbook/internal/logging"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(r.Context()).Error("failed to encode response", "error", err)
	}
}

func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	JSON(w, r, status, APIError{Code: code, Message: message})
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	Fail(w, r, http.StatusBadRequest, "INVALID_REQUEST", message)
}

// Error translates an error returned by the core into a status code and body.
// Unknown errors are logged and reported as 500 without their text.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		Fail(w, r, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		Fail(w, r, http.StatusNotFound, "RESOURCE_NOT_FOUND", err.Error())
	case errors.Is(err, ledger.ErrConflict):
		Fail(w, r, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ledger.ErrStoreUnavailable):
		logging.FromContext(r.Context()).Error("store unavailable", "error", err)
		Fail(w, r, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "The asset store is unavailable")
	default:
		logging.FromContext(r.Context()).Error("unhandled error", "error", err)
		Fail(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// PathID reads a positive integer id from the named URL parameter. On failure
// it writes a 400 response and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(w, r, "invalid id")
		return 0, false
	}

	return id, true
}
