package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// Check probes one backing store.
type Check func(ctx context.Context) error

// MongoCheck runs a ping command against the review database.
func MongoCheck(db *mongo.Database) Check {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// RedisCheck pings the lock store.
func RedisCheck(rdb *redis.Client) Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// HealthHandler serves the liveness and readiness probes. Probe responses
// bypass the API envelope.
type HealthHandler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Live handles GET /health.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Ready handles GET /health/ready. Stores are probed in parallel; any failure
// turns the whole answer into a 503.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]probeResult, len(h.checks))
		failed  bool
	)
	for name, check := range h.checks {
		wg.Add(1)
		go func(name string, check Check) {
			defer wg.Done()
			res := probeResult{Status: "ok"}
			if err := check(ctx); err != nil {
				res = probeResult{Status: "unhealthy", Error: err.Error()}
			}
			mu.Lock()
			results[name] = res
			failed = failed || res.Error != ""
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()

	if failed {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"status": "degraded", "dependencies": results})
	}
	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "dependencies": results})
}
