package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/wardshift/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// DBPinger is satisfied by *mongo.Client.
type DBPinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// CachePinger is satisfied by *doccache.Cache, including a nil one.
type CachePinger interface {
	Ping(ctx context.Context) error
	Enabled() bool
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client DBPinger
	Cache  CachePinger
	Log    *zap.Logger
}

// NewHandler constructs a health Handler. cache may be nil.
func NewHandler(client DBPinger, cache CachePinger, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Cache:  cache,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "cache":"connected|disabled" }
//
// When only Redis is down: 200 and status "degraded"; stores fall back to
// Mongo reads. On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Cache:    "disabled",
	}

	if h.Cache != nil && h.Cache.Enabled() {
		if err := h.Cache.Ping(ctx); err != nil {
			h.Log.Warn("health-check: redis ping failed", zap.Error(err))
			resp.Status = "degraded"
			resp.Cache = "disconnected"
		} else {
			resp.Cache = "connected"
		}
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
