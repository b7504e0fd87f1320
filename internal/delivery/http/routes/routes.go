package routes

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	v1 "skillswap/internal/delivery/http/routes/v1"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler

	cfg    config.Config
	db     database.DB
	cache  usecase.FeedCache
	logger *log.Logger
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.FeedCache, dbPinger, cachePinger handler.Pinger, logger *log.Logger) *Registry {
	return &Registry{
		health: handler.NewHealthHandler(dbPinger, cachePinger),
		cfg:    cfg,
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.cache, r.logger)
}
