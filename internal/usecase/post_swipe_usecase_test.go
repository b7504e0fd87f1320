package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/repository"

	"github.com/google/uuid"
)

func TestSwipe_InvalidDirection(t *testing.T) {
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: uuid.New()}, &mockSwipeRepo{}, nil, nil)

	_, err := uc.Swipe(context.Background(), uuid.New(), SwipeParams{
		PostID:    uuid.New(),
		Direction: "up",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSwipe_PostNotFound(t *testing.T) {
	uc := NewPostSwipeUsecase(&mockPostRepo{}, &mockSwipeRepo{}, nil, nil)

	_, err := uc.Swipe(context.Background(), uuid.New(), SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeRight,
	})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestSwipe_SelfSwipeRejected(t *testing.T) {
	userID := uuid.New()
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: userID}, &mockSwipeRepo{}, nil, nil)

	_, err := uc.Swipe(context.Background(), userID, SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeLeft,
	})
	if !errors.Is(err, ErrSelfSwipe) {
		t.Fatalf("expected ErrSelfSwipe, got %v", err)
	}
}

func TestSwipe_LeftSetsExpiry(t *testing.T) {
	swipes := &mockSwipeRepo{}
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: uuid.New()}, swipes, nil, nil)

	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	res, err := uc.Swipe(context.Background(), uuid.New(), SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeLeft,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := now.Add(repository.LeftSwipeTTL)
	if res.HiddenUntil == nil || !res.HiddenUntil.Equal(want) {
		t.Fatalf("expected hidden until %v, got %v", want, res.HiddenUntil)
	}
	if len(swipes.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(swipes.upserts))
	}
	up := swipes.upserts[0]
	if up.SwipeType != repository.SwipeLeft || up.ExpiresAt == nil || !up.ExpiresAt.Equal(want) {
		t.Fatalf("unexpected upsert: %+v", up)
	}
}

func TestSwipe_RightIsPermanent(t *testing.T) {
	swipes := &mockSwipeRepo{}
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: uuid.New()}, swipes, nil, nil)

	res, err := uc.Swipe(context.Background(), uuid.New(), SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeRight,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.HiddenUntil != nil {
		t.Fatalf("right swipe must not carry an expiry")
	}
	if len(swipes.upserts) != 1 || swipes.upserts[0].ExpiresAt != nil {
		t.Fatalf("expected a permanent upsert, got %+v", swipes.upserts)
	}
}

func TestSwipe_InvalidatesViewerFeedCache(t *testing.T) {
	cache := &mockCache{}
	userID := uuid.New()
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: uuid.New()}, &mockSwipeRepo{}, cache, nil)

	if _, err := uc.Swipe(context.Background(), userID, SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeRight,
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(cache.patterns) != 1 || cache.patterns[0] != FeedCachePattern(userID) {
		t.Fatalf("expected the viewer's feed pattern invalidated, got %v", cache.patterns)
	}
}

func TestSwipe_UpsertFailureIsInternal(t *testing.T) {
	swipes := &mockSwipeRepo{err: errors.New("connection refused")}
	uc := NewPostSwipeUsecase(&mockPostRepo{owner: uuid.New()}, swipes, nil, nil)

	_, err := uc.Swipe(context.Background(), uuid.New(), SwipeParams{
		PostID:    uuid.New(),
		Direction: repository.SwipeLeft,
	})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
