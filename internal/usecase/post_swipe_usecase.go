package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSelfSwipe    = errors.New("cannot swipe on your own post")
)

type SwipeParams struct {
	PostID    uuid.UUID
	Direction string
}

type SwipeResult struct {
	PostID    uuid.UUID
	Direction string
	// HiddenUntil is set for left swipes only; right swipes hide forever.
	HiddenUntil *time.Time
}

type PostSwipeUsecase interface {
	Swipe(ctx context.Context, userID uuid.UUID, params SwipeParams) (SwipeResult, error)
}

type PostSwipe struct {
	posts  repository.PostRepository
	swipes repository.SwipeRepository
	cache  FeedCache
	logger *log.Logger
	now    func() time.Time
}

func NewPostSwipeUsecase(posts repository.PostRepository, swipes repository.SwipeRepository, cache FeedCache, logger *log.Logger) *PostSwipe {
	return &PostSwipe{posts: posts, swipes: swipes, cache: cache, logger: logger, now: time.Now}
}

func (u *PostSwipe) Swipe(ctx context.Context, userID uuid.UUID, params SwipeParams) (SwipeResult, error) {
	if userID == uuid.Nil {
		return SwipeResult{}, ErrUnauthorized
	}
	if params.PostID == uuid.Nil {
		return SwipeResult{}, invalidField("post_id", "must be a valid UUID")
	}
	if params.Direction != repository.SwipeLeft && params.Direction != repository.SwipeRight {
		return SwipeResult{}, invalidField("direction", "must be left or right")
	}

	ownerID, err := u.posts.FindOwnerID(ctx, params.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return SwipeResult{}, ErrPostNotFound
		}
		return SwipeResult{}, ErrInternal
	}
	if ownerID == userID {
		return SwipeResult{}, ErrSelfSwipe
	}

	up := repository.SwipeUpsert{
		UserID:    userID,
		PostID:    params.PostID,
		SwipeType: params.Direction,
	}
	var hiddenUntil *time.Time
	if params.Direction == repository.SwipeLeft {
		t := u.now().Add(repository.LeftSwipeTTL)
		up.ExpiresAt = &t
		hiddenUntil = &t
	}

	if err := u.swipes.Upsert(ctx, up); err != nil {
		return SwipeResult{}, ErrInternal
	}

	// The swipe changes which posts this user may see, so every cached feed
	// page of theirs is stale.
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, FeedCachePattern(userID)); err != nil && u.logger != nil {
			u.logger.Printf("[Swipe] Cache invalidation failed for user %s: %v", userID, err)
		}
	}

	return SwipeResult{
		PostID:      params.PostID,
		Direction:   params.Direction,
		HiddenUntil: hiddenUntil,
	}, nil
}
