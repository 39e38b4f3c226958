package handler

import (
	"context"
	"time"

	"talent-hive/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports dependency reachability. Redis is optional, so a
// failed cache ping degrades the status without failing it.
type HealthHandler struct {
	db    pinger
	cache pinger
}

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHealthHandler(db, cache pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := healthStatus{Status: "ok", Database: probe(ctx, h.db), Cache: probe(ctx, h.cache)}
	if st.Database != "up" {
		st.Status = "unavailable"
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", st)
	}
	if st.Cache != "up" {
		st.Status = "degraded"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func probe(ctx context.Context, p pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
