package handler

import (
	"errors"
	"time"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PostSwipeHandler struct {
	uc usecase.PostSwipeUsecase
}

func NewPostSwipeHandler(uc usecase.PostSwipeUsecase) *PostSwipeHandler {
	return &PostSwipeHandler{uc: uc}
}

func (h *PostSwipeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:post_id/swipe", h.Swipe)
}

func (h *PostSwipeHandler) Swipe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	postID, err := uuid.Parse(c.Params("post_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SwipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Swipe(c.Context(), userID, usecase.SwipeParams{
		PostID:    postID,
		Direction: req.Direction,
	})
	if err != nil {
		return mapSwipeUsecaseError(err)
	}

	out := dto.SwipeResponse{
		PostID:    res.PostID,
		Direction: res.Direction,
	}
	if res.HiddenUntil != nil {
		out.HiddenUntil = res.HiddenUntil.UTC().Format(time.RFC3339)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapSwipeUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request",
			fiber.Map{"field": vErr.Field, "reason": vErr.Reason}, err)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrPostNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Post not found", nil, err)
	case errors.Is(err, usecase.ErrSelfSwipe):
		return middleware.NewAppError(fiber.StatusForbidden, "Cannot swipe on your own post", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
