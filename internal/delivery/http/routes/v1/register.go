package v1

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, feedCache usecase.FeedCache, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	postRepo := repository.NewPostgresPostRepository(db)
	profileRepo := repository.NewPostgresProfileSkillRepository(db)
	addressRepo := repository.NewPostgresAddressRepository(db)
	swipeRepo := repository.NewPostgresSwipeRepository(db)
	blockRepo := repository.NewPostgresBlockRepository(db)

	feedUC := usecase.NewPostFeedUsecase(postRepo, profileRepo, addressRepo, swipeRepo, blockRepo, feedCache, cfg.Feed.CacheTTL, logger)
	swipeUC := usecase.NewPostSwipeUsecase(postRepo, swipeRepo, feedCache, logger)

	feedHandler := handler.NewPostFeedHandler(feedUC)
	swipeHandler := handler.NewPostSwipeHandler(swipeUC)

	protected := r.Group("", authMw.Middleware())

	postsGroup := protected.Group("/posts")
	feedHandler.RegisterRoutes(postsGroup)
	swipeHandler.RegisterRoutes(postsGroup)
}
