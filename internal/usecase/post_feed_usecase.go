package usecase

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternal              = errors.New("internal error")
	ErrViewerProfileNotFound = errors.New("viewer profile not found")
)

// ValidationError carries the offending field so handlers can surface
// actionable detail; errors.Is(err, ErrInvalidInput) still holds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Page and Limit are nil when the caller omitted them; an explicit value is
// validated as given, so a supplied 0 is rejected rather than defaulted.
type FeedParams struct {
	Page          *int
	Limit         *int
	Status        string
	Medium        string
	MinMatchScore *int
	Criteria      matching.Criteria
}

type FeedItem struct {
	PostID             uuid.UUID
	OwnerID            uuid.UUID
	Title              string
	Description        string
	Status             string
	Medium             string
	RequiredSkillID    *uuid.UUID
	RequiredSubSkillID *uuid.UUID
	CreatedAt          time.Time
	Match              *matching.Result
}

type FeedResult struct {
	Items      []FeedItem
	Pagination matching.Pagination
	Criteria   matching.CriteriaReport
}

type PostFeedUsecase interface {
	GetFeed(ctx context.Context, viewerID uuid.UUID, params FeedParams) (FeedResult, error)
}

type PostFeed struct {
	posts     repository.PostRepository
	profiles  repository.ProfileSkillRepository
	addresses repository.AddressRepository
	swipes    repository.SwipeRepository
	blocks    repository.BlockRepository
	cache     FeedCache
	cacheTTL  time.Duration
	logger    *log.Logger
}

func NewPostFeedUsecase(
	posts repository.PostRepository,
	profiles repository.ProfileSkillRepository,
	addresses repository.AddressRepository,
	swipes repository.SwipeRepository,
	blocks repository.BlockRepository,
	cache FeedCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *PostFeed {
	return &PostFeed{posts: posts, profiles: profiles, addresses: addresses, swipes: swipes, blocks: blocks, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (u *PostFeed) GetFeed(ctx context.Context, viewerID uuid.UUID, params FeedParams) (FeedResult, error) {
	if viewerID == uuid.Nil {
		return FeedResult{}, ErrUnauthorized
	}

	page, limit := 1, 10
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Status == "" {
		params.Status = matching.StatusActive
	}

	if page < 1 {
		return FeedResult{}, invalidField("page", "must be at least 1")
	}
	if limit < 1 || limit > 100 {
		return FeedResult{}, invalidField("limit", "must be between 1 and 100")
	}
	if !matching.ValidStatus(params.Status) {
		return FeedResult{}, invalidField("status", "unknown status value")
	}
	if params.Medium != "" && !matching.ValidMedium(params.Medium) {
		return FeedResult{}, invalidField("medium", "unknown medium value")
	}
	if params.MinMatchScore != nil && (*params.MinMatchScore < 0 || *params.MinMatchScore > 100) {
		return FeedResult{}, invalidField("min_match_score", "must be between 0 and 100")
	}

	exists, err := u.profiles.ProfileExists(ctx, viewerID)
	if err != nil {
		return FeedResult{}, ErrInternal
	}
	if !exists {
		return FeedResult{}, ErrViewerProfileNotFound
	}

	// Normalized so an omitted parameter and its default share a cache key.
	params.Page, params.Limit = &page, &limit

	cacheKey := FeedCacheKey(viewerID, params)
	lockKey := FeedLockKey(cacheKey)

	if u.cache != nil {
		var cached FeedResult
		hit, cerr := u.cache.GetJSON(ctx, cacheKey, &cached)
		if cerr == nil && hit {
			if u.logger != nil {
				u.logger.Printf("[Feed] Cache HIT: %s", cacheKey)
			}
			return cached, nil
		}
		if u.logger != nil {
			u.logger.Printf("[Feed] Cache MISS: %s", cacheKey)
		}
	}

	lockAcquired := false
	if u.cache != nil {
		ok, lerr := u.cache.SetIfNotExists(ctx, lockKey, "1", 10*time.Second)
		if lerr == nil && ok {
			lockAcquired = true
		} else if lerr == nil && !ok {
			select {
			case <-ctx.Done():
				return FeedResult{}, ctx.Err()
			case <-time.After(200 * time.Millisecond):
			}
			var cached FeedResult
			hit, cerr := u.cache.GetJSON(ctx, cacheKey, &cached)
			if cerr == nil && hit {
				if u.logger != nil {
					u.logger.Printf("[Feed] Cache HIT: %s", cacheKey)
				}
				return cached, nil
			}
		}
	}

	snap, err := u.loadSnapshot(ctx, viewerID, params)
	if err != nil {
		return FeedResult{}, err
	}

	res := buildFeed(viewerID, snap, params, page, limit)

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, cacheKey, res, u.cacheTTL)
		if u.logger != nil {
			u.logger.Printf("[Feed] Cache SET: %s", cacheKey)
		}
		if lockAcquired {
			_ = u.cache.Delete(ctx, lockKey)
		}
	}

	return res, nil
}

type feedSnapshot struct {
	skillIDs    []uuid.UUID
	subSkillIDs []uuid.UUID
	pincode     *string
	candidates  []repository.PostRow
	blocked     []uuid.UUID
	swiped      []uuid.UUID
}

// loadSnapshot issues the four independent read groups in parallel: viewer
// reference data, candidate posts, block set, active swipe set. Scoring
// waits for all of them; a dead context aborts the request instead of
// serving a page built on partial reads.
func (u *PostFeed) loadSnapshot(ctx context.Context, viewerID uuid.UUID, params FeedParams) (feedSnapshot, error) {
	var snap feedSnapshot
	var wg sync.WaitGroup
	errs := make([]error, 4)

	wg.Add(4)
	go func() {
		defer wg.Done()
		skills, err := u.profiles.FindSkillIDs(ctx, viewerID)
		if err != nil {
			errs[0] = err
			return
		}
		subs, err := u.profiles.FindSubSkillIDs(ctx, viewerID)
		if err != nil {
			errs[0] = err
			return
		}
		pin, ok, err := u.addresses.FindActivePincode(ctx, viewerID)
		if err != nil {
			errs[0] = err
			return
		}
		snap.skillIDs = skills
		snap.subSkillIDs = subs
		if ok {
			snap.pincode = &pin
		}
	}()
	go func() {
		defer wg.Done()
		rows, err := u.posts.ListCandidates(ctx, repository.CandidateFilter{
			ViewerID: viewerID,
			Status:   params.Status,
			Medium:   params.Medium,
		})
		if err != nil {
			errs[1] = err
			return
		}
		snap.candidates = rows
	}()
	go func() {
		defer wg.Done()
		ids, err := u.blocks.BlockedUserIDs(ctx, viewerID)
		if err != nil {
			errs[2] = err
			return
		}
		snap.blocked = ids
	}()
	go func() {
		defer wg.Done()
		ids, err := u.swipes.ActiveSwipedPostIDs(ctx, viewerID)
		if err != nil {
			errs[3] = err
			return
		}
		snap.swiped = ids
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return feedSnapshot{}, err
	}
	for _, err := range errs {
		if err != nil {
			return feedSnapshot{}, ErrInternal
		}
	}
	return snap, nil
}

func buildFeed(viewerID uuid.UUID, snap feedSnapshot, params FeedParams, page, limit int) FeedResult {
	viewer := matching.Viewer{
		UserID:        viewerID,
		SkillIDs:      toSet(snap.skillIDs),
		SubSkillIDs:   toSet(snap.subSkillIDs),
		ActivePincode: snap.pincode,
	}

	rowByID := make(map[uuid.UUID]repository.PostRow, len(snap.candidates))
	posts := make([]matching.Post, 0, len(snap.candidates))
	for _, r := range snap.candidates {
		rowByID[r.ID] = r
		posts = append(posts, matching.Post{
			ID:                 r.ID,
			OwnerID:            r.OwnerID,
			Status:             r.Status,
			Medium:             r.Medium,
			RequiredSkillID:    r.RequiredSkillID,
			RequiredSubSkillID: r.RequiredSubSkillID,
			OwnerActivePincode: r.OwnerActivePincode,
			CreatedAt:          r.CreatedAt,
		})
	}

	blocked := toSet(snap.blocked)
	swiped := toSet(snap.swiped)
	eligible := matching.FilterEligible(viewerID, posts, matching.ExclusionPredicates{
		IsBlocked: func(ownerID uuid.UUID) bool { _, ok := blocked[ownerID]; return ok },
		IsSwiped:  func(postID uuid.UUID) bool { _, ok := swiped[postID]; return ok },
	})

	scoring := params.Criteria.EnabledCount() > 0
	items := make([]matching.ScoredPost, 0, len(eligible))
	for _, p := range eligible {
		it := matching.ScoredPost{Post: p}
		if scoring {
			res := matching.Score(viewer, p, params.Criteria)
			it.Result = &res
		}
		items = append(items, it)
	}

	// Zero enabled axes is the defined no-criteria branch: every eligible
	// post is returned unscored and the threshold does not apply.
	if scoring {
		items = matching.Threshold(items, params.MinMatchScore)
	}
	matching.Rank(items)
	pageItems, pagination := matching.Paginate(items, page, limit)

	out := make([]FeedItem, 0, len(pageItems))
	for _, it := range pageItems {
		r := rowByID[it.Post.ID]
		out = append(out, FeedItem{
			PostID:             r.ID,
			OwnerID:            r.OwnerID,
			Title:              r.Title,
			Description:        r.Description,
			Status:             r.Status,
			Medium:             r.Medium,
			RequiredSkillID:    r.RequiredSkillID,
			RequiredSubSkillID: r.RequiredSubSkillID,
			CreatedAt:          r.CreatedAt,
			Match:              it.Result,
		})
	}

	return FeedResult{
		Items:      out,
		Pagination: pagination,
		Criteria:   matching.Report(viewer, params.Criteria),
	}
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}
