package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness check.
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler over the named checks.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Healthz answers "ok" when every check passes. It is served outside the
// documented /api base.
func (h *HealthHandler) Healthz(c echo.Context) error {
	for name, check := range h.checks {
		if err := check.Ping(c.Request().Context()); err != nil {
			return internalError(c, err, "health check "+name)
		}
	}
	return c.String(http.StatusOK, "ok")
}
