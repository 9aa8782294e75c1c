package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const pingTimeout = 2 * time.Second

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler serves the readiness probe. Absent or unreachable
// dependencies degrade the report but never fail it: the platform keeps
// serving in simulated mode without a backend, so readiness mirrors that.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

type readinessResponse struct {
	Status string            `json:"status"`
	Deps   map[string]string `json:"dependencies"`
}

// Readiness pings each configured dependency and reports per-dependency
// state. Overall status is "ok" when everything configured responds,
// "degraded" otherwise.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	deps := map[string]string{}
	degraded := false

	if h.db == nil {
		deps["mongodb"] = "absent"
		degraded = true
	} else if err := h.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		deps["mongodb"] = "down"
		degraded = true
	} else {
		deps["mongodb"] = "ok"
	}

	if h.rdb == nil {
		deps["redis"] = "absent"
		degraded = true
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
		degraded = true
	} else {
		deps["redis"] = "ok"
	}

	status := "ok"
	if degraded {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, readinessResponse{Status: status, Deps: deps})
}
