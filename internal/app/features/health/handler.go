// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the liveness endpoint.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type healthResponse struct {
	Status string `json:"status"`
	Mongo  string `json:"mongo"`
}

// ServeHealth reports process liveness and database reachability. The
// response is 200 with mongo "ok" when the ping succeeds, 503 otherwise.
//
// Route: GET /health
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{Status: "ok", Mongo: "ok"}
	code := http.StatusOK
	if err := h.DB.Client().Ping(ctx, nil); err != nil {
		h.Log.Warn("health ping failed", zap.Error(err))
		resp.Mongo = "unreachable"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Warn("health encode failed", zap.Error(err))
	}
}
