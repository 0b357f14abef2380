// internal/app/features/obstacles/last30days.go
package obstacles

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MGumpen/aor/internal/app/system/timeouts"
	"github.com/MGumpen/aor/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// last30Row is one obstacle in the recent-obstacles feed. Coordinates is
// the stored JSON array of [lat,lng] points, passed through as a string.
type last30Row struct {
	ReportID     string    `json:"reportId"`
	ObstacleName string    `json:"obstacleName"`
	ObstacleType string    `json:"obstacleType"`
	Coordinates  string    `json:"coordinates"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HandleLast30Days returns the obstacles created in the past 30 days as
// JSON, for the map overlay on the report form. Each row carries the id
// of the obstacle's originating report so the client can link into the
// review views.
//
// Route: GET /obstacles/last30days
func (h *Handler) HandleLast30Days(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	obstacles, err := h.Obstacles.CreatedSince(ctx, cutoff)
	if err != nil {
		h.Log.Error("last30days query failed", zap.Error(err))
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	reportByObstacle, err := h.originatingReports(ctx, obstacles)
	if err != nil {
		h.Log.Error("last30days report lookup failed", zap.Error(err))
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}

	rows := make([]last30Row, 0, len(obstacles))
	for _, o := range obstacles {
		reportID, ok := reportByObstacle[o.ID]
		if !ok {
			// No originating report on record; nothing to link to.
			continue
		}
		rows = append(rows, last30Row{
			ReportID:     reportID.Hex(),
			ObstacleName: o.Name,
			ObstacleType: o.Type,
			Coordinates:  o.Coordinates,
			CreatedAt:    o.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		h.Log.Warn("last30days encode failed", zap.Error(err))
	}
}

// originatingReports maps each obstacle id to the id of the report created
// with it at submission time.
func (h *Handler) originatingReports(ctx context.Context, obstacles []models.Obstacle) (map[primitive.ObjectID]primitive.ObjectID, error) {
	out := make(map[primitive.ObjectID]primitive.ObjectID, len(obstacles))
	if len(obstacles) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, 0, len(obstacles))
	for _, o := range obstacles {
		ids = append(ids, o.ID)
	}

	reports, err := h.Reports.Find(ctx, bson.M{"obstacle_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		out[rep.ObstacleID] = rep.ID
	}
	return out, nil
}
