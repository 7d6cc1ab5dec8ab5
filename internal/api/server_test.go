package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ValidateWiring_MissingOrchestrator(t *testing.T) {
	s := NewServer()
	err := s.ValidateWiring()
	require.Error(t, err)
}

func TestLivenessHandler(t *testing.T) {
	s := NewServer()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.livenessHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestRolesHandler(t *testing.T) {
	s := NewServer()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, s.rolesHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.AvailableRoles, 6)
	assert.Equal(t, "Ruby", resp.DefaultRole)
}

func TestAskHandler_RejectsEmptyQuestion(t *testing.T) {
	s := NewServer()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.askHandler(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAskHandler_RejectsMalformedSince(t *testing.T) {
	s := NewServer()

	e := echo.New()
	body := `{"question":"How is my sleep?","since":"not-a-date"}`
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.askHandler(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
