package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/elyx-health/conductor/internal/apperrors"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"role not found", apperrors.ErrRoleNotFound, http.StatusBadRequest},
		{"index unavailable", apperrors.ErrIndexUnavailable, http.StatusInternalServerError},
		{"generator exhausted", apperrors.ErrGeneratorExhausted, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapServiceError(tt.err)
			if got.Code != tt.wantStatus {
				t.Errorf("mapServiceError(%v).Code = %d, want %d", tt.err, got.Code, tt.wantStatus)
			}
		})
	}
}

func TestMapServiceError_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), apperrors.ErrRoleNotFound)
	got := mapServiceError(wrapped)
	if got.Code != http.StatusBadRequest {
		t.Errorf("mapServiceError(wrapped).Code = %d, want %d", got.Code, http.StatusBadRequest)
	}
}
