package api

import (
	"errors"
	"log/slog"
	"net/http"

	echo "github.com/labstack/echo/v5"

	"github.com/elyx-health/conductor/internal/apperrors"
)

// mapServiceError maps an orchestrator/retriever-layer error to an HTTP
// error response per the error-kind-to-status mapping (§7).
func mapServiceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperrors.ErrRoleNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "role not found")
	case errors.Is(err, apperrors.ErrIndexUnavailable):
		return echo.NewHTTPError(http.StatusInternalServerError, "vector index unavailable")
	case errors.Is(err, apperrors.ErrGeneratorExhausted):
		return echo.NewHTTPError(http.StatusInternalServerError, "generator exhausted all credentials and fallbacks")
	}

	slog.Error("unexpected rag service error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
