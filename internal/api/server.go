// Package api exposes the role-scoped retrieval-and-answer pipeline over
// HTTP (C14).
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"

	"github.com/elyx-health/conductor/internal/rag"
	"github.com/elyx-health/conductor/pkg/version"
)

const dateLayout = "2006-01-02"

// Server is the RAG HTTP API server.
type Server struct {
	echo         *echo.Echo
	httpServer   *http.Server
	orchestrator *rag.Orchestrator // nil until set
}

// NewServer creates a new API server with Echo v5 and registers routes.
func NewServer() *Server {
	e := echo.New()

	s := &Server{echo: e}
	e.Use(middleware.BodyLimit(1 * 1024 * 1024))
	e.Use(securityHeaders())

	s.setupRoutes()
	return s
}

// SetOrchestrator wires the answer orchestrator that backs POST /ask.
func (s *Server) SetOrchestrator(o *rag.Orchestrator) {
	s.orchestrator = o
}

// ValidateWiring checks that all required dependencies have been wired via
// their Set* methods. Call after every Set* call and before Start.
func (s *Server) ValidateWiring() error {
	var errs []error
	if s.orchestrator == nil {
		errs = append(errs, fmt.Errorf("orchestrator not set (call SetOrchestrator)"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("server wiring incomplete: %w", errors.Join(errs...))
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.livenessHandler)
	s.echo.GET("/roles", s.rolesHandler)
	s.echo.POST("/ask", s.askHandler)
}

// Start starts the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{Addr: addr, Handler: s.echo}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener. Used
// by test infrastructure to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.echo}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) livenessHandler(c *echo.Context) error {
	return c.JSON(http.StatusOK, &LivenessResponse{Status: "ok", Version: version.Full()})
}

func (s *Server) rolesHandler(c *echo.Context) error {
	roles := make([]string, 0, len(rag.AllRoles))
	for _, r := range rag.AllRoles {
		roles = append(roles, string(r))
	}
	return c.JSON(http.StatusOK, &RolesResponse{
		AvailableRoles: roles,
		DefaultRole:    string(rag.DefaultRole),
	})
}

func (s *Server) askHandler(c *echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question is required")
	}

	var since *time.Time
	if req.Since != "" {
		t, err := time.Parse(dateLayout, req.Since)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be YYYY-MM-DD")
		}
		since = &t
	}

	answer, err := s.orchestrator.Ask(c.Request().Context(), req.Question, req.Role, since)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(http.StatusOK, &AskResponse{
		Role:    string(answer.Role),
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}
