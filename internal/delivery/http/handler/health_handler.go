package handler

import (
	"context"

	"skillswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports per-dependency state. Redis being down does not fail the
// check since the feed degrades to uncached reads.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbState := "ok"
	cacheState := "ok"

	if h.db == nil || h.db.Ping(c.Context()) != nil {
		dbState = "down"
	}
	if h.cache == nil || h.cache.Ping(c.Context()) != nil {
		cacheState = "down"
	}

	data := fiber.Map{"database": dbState, "cache": cacheState}
	if dbState != "ok" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
