package handler

import (
	"net/http"
	"time"

	"github.com/acailab/goaltrack/internal/domain"
)

// HealthHandler reports API and database status.
type HealthHandler struct {
	db domain.Database
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db domain.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth responds with the service status and a database
// connectivity check.
// GET /api/health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := map[string]string{
		"api":      "ok",
		"database": "ok",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = "unreachable"
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "degraded"
	}

	writeJSON(w, status, map[string]any{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    checks,
	})
}
