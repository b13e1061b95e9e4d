package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Success   bool              `json:"success"`
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// KeyCache reports the state of the signing-key cache
type KeyCache interface {
	CachedKeys() int
	LastRefresh() time.Time
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	db     *sql.DB
	keys   KeyCache
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. db and keys may be nil.
func NewHealthHandler(db *sql.DB, keys KeyCache, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		keys:   keys,
		logger: logger,
	}
}

// HandleHealth handles GET /healthz
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Success:   true,
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz. Only the database gates readiness;
// the key cache fills lazily on the first authorized request.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if err := h.checkDatabase(ctx); err != nil {
		h.logger.Warn("database health check failed", zap.Error(err))
		checks["database"] = "unhealthy"
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	checks["signing_keys"] = h.keyCacheStatus()

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Success:   healthy,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) error {
	if h.db == nil {
		return nil
	}

	if err := h.db.PingContext(ctx); err != nil {
		return err
	}

	var result int
	return h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
}

func (h *HealthHandler) keyCacheStatus() string {
	switch {
	case h.keys == nil:
		return "disabled"
	case h.keys.CachedKeys() == 0:
		return "empty"
	default:
		return "cached"
	}
}
