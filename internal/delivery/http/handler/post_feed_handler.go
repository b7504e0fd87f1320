package handler

import (
	"errors"
	"strconv"
	"time"

	"skillswap/internal/delivery/http/dto"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/domain/matching"
	"skillswap/internal/pkg/response"
	"skillswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PostFeedHandler struct {
	uc usecase.PostFeedUsecase
}

func NewPostFeedHandler(uc usecase.PostFeedUsecase) *PostFeedHandler {
	return &PostFeedHandler{uc: uc}
}

func (h *PostFeedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/feed", h.GetFeed)
}

func (h *PostFeedHandler) GetFeed(c fiber.Ctx) error {
	viewerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params, err := parseFeedQuery(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.GetFeed(c.Context(), viewerID, params)
	if err != nil {
		return mapFeedUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, feedResponseFromResult(res))
}

func parseFeedQuery(c fiber.Ctx) (usecase.FeedParams, error) {
	page, err := parseQueryIntOptional(c, "page")
	if err != nil {
		return usecase.FeedParams{}, err
	}
	limit, err := parseQueryIntOptional(c, "limit")
	if err != nil {
		return usecase.FeedParams{}, err
	}
	minScore, err := parseQueryIntOptional(c, "min_match_score")
	if err != nil {
		return usecase.FeedParams{}, err
	}

	criteria := matching.DefaultCriteria()
	if criteria.Skills, err = parseQueryBoolStrict(c, "match_skills", true); err != nil {
		return usecase.FeedParams{}, err
	}
	if criteria.SubSkills, err = parseQueryBoolStrict(c, "match_sub_skills", true); err != nil {
		return usecase.FeedParams{}, err
	}
	if criteria.Location, err = parseQueryBoolStrict(c, "match_location", true); err != nil {
		return usecase.FeedParams{}, err
	}

	return usecase.FeedParams{
		Page:          page,
		Limit:         limit,
		Status:        c.Query("status"),
		Medium:        c.Query("medium"),
		MinMatchScore: minScore,
		Criteria:      criteria,
	}, nil
}

// parseQueryIntOptional returns nil when the parameter is absent so callers
// can tell an omitted value from an explicit one.
func parseQueryIntOptional(c fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseQueryBoolStrict(c fiber.Ctx, key string, defaultVal bool) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, err
	}
	return v, nil
}

func feedResponseFromResult(res usecase.FeedResult) dto.FeedResponse {
	posts := make([]dto.FeedPostResponse, 0, len(res.Items))
	for _, it := range res.Items {
		p := dto.FeedPostResponse{
			PostID:             it.PostID,
			OwnerID:            it.OwnerID,
			Title:              it.Title,
			Description:        it.Description,
			Status:             it.Status,
			Medium:             it.Medium,
			RequiredSkillID:    it.RequiredSkillID,
			RequiredSubSkillID: it.RequiredSubSkillID,
			CreatedAt:          it.CreatedAt.UTC().Format(time.RFC3339),
		}
		if it.Match != nil {
			p.MatchScore = &dto.MatchScoreResponse{
				Score:      it.Match.Score,
				MaxScore:   it.Match.MaxScore,
				Percentage: it.Match.Percentage,
				Reasons: dto.MatchReasonsResponse{
					SkillMatch:    it.Match.Reasons.SkillMatch,
					SubSkillMatch: it.Match.Reasons.SubSkillMatch,
					LocationMatch: it.Match.Reasons.LocationMatch,
				},
			}
		}
		posts = append(posts, p)
	}

	return dto.FeedResponse{
		Posts: posts,
		Pagination: dto.PaginationResponse{
			CurrentPage:  res.Pagination.CurrentPage,
			TotalPages:   res.Pagination.TotalPages,
			TotalItems:   res.Pagination.TotalItems,
			ItemsPerPage: res.Pagination.ItemsPerPage,
		},
		MatchingCriteria: dto.MatchingCriteriaResponse{
			Enabled: dto.CriteriaEnabledResponse{
				Skills:    res.Criteria.Enabled.Skills,
				SubSkills: res.Criteria.Enabled.SubSkills,
				Location:  res.Criteria.Enabled.Location,
			},
			UserDataCounts: dto.UserDataCountsResponse{
				Skills:    res.Criteria.UserDataCounts.Skills,
				SubSkills: res.Criteria.UserDataCounts.SubSkills,
				Locations: res.Criteria.UserDataCounts.Locations,
			},
		},
	}
}

func mapFeedUsecaseError(err error) error {
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
	case errors.Is(err, usecase.ErrViewerProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
