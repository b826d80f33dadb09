package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/assetbook/internal/http/respond"
	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		hideText bool
	}{
		{name: "Validation", err: fmt.Errorf("%w: ledger name cannot be empty", ledger.ErrValidation), status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "NotFound", err: fmt.Errorf("ledger 3: %w", ledger.ErrNotFound), status: http.StatusNotFound, code: "RESOURCE_NOT_FOUND"},
		{name: "Conflict", err: fmt.Errorf("creating ledger: %w: UNIQUE constraint failed", ledger.ErrConflict), status: http.StatusConflict, code: "CONFLICT"},
		{name: "Unavailable", err: ledger.ErrStoreUnavailable, status: http.StatusServiceUnavailable, code: "STORE_UNAVAILABLE", hideText: true},
		{name: "Unknown", err: errors.New("disk on fire"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR", hideText: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body respond.APIError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)

			if tt.hideText {
				assert.NotContains(t, body.Message, tt.err.Error())
			} else {
				assert.Equal(t, tt.err.Error(), body.Message)
			}
		})
	}
}
