package handlers

import (
	"context"
	"net/http"
	"time"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		timeout: 2 * time.Second,
		logger:  logger.Named("health_handler"),
	}
}

func (h *HealthHandler) check(w http.ResponseWriter, r *http.Request, _ map[string]string) error {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("Database ping failed", zap.Error(err))
		return e.New(http.StatusServiceUnavailable, "database unavailable")
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
	return nil
}
