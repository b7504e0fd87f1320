package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillswap/internal/domain/matching"
	"skillswap/internal/repository"

	"github.com/google/uuid"
)

type mockPostRepo struct {
	rows  []repository.PostRow
	owner uuid.UUID
	err   error

	listCalls int
}

func (m *mockPostRepo) ListCandidates(context.Context, repository.CandidateFilter) ([]repository.PostRow, error) {
	m.listCalls++
	return m.rows, m.err
}

func (m *mockPostRepo) FindOwnerID(context.Context, uuid.UUID) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	if m.owner == uuid.Nil {
		return uuid.Nil, repository.ErrPostNotFound
	}
	return m.owner, nil
}

type mockProfileRepo struct {
	exists bool
	skills []uuid.UUID
	subs   []uuid.UUID
	err    error

	existsCalls int
}

func (m *mockProfileRepo) ProfileExists(context.Context, uuid.UUID) (bool, error) {
	m.existsCalls++
	return m.exists, m.err
}
func (m *mockProfileRepo) FindSkillIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.skills, m.err
}
func (m *mockProfileRepo) FindSubSkillIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.subs, m.err
}

type mockAddressRepo struct {
	pincode string
	active  bool
	err     error
}

func (m *mockAddressRepo) FindActivePincode(context.Context, uuid.UUID) (string, bool, error) {
	return m.pincode, m.active, m.err
}

type mockSwipeRepo struct {
	swiped  []uuid.UUID
	err     error
	upserts []repository.SwipeUpsert
}

func (m *mockSwipeRepo) ActiveSwipedPostIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.swiped, m.err
}
func (m *mockSwipeRepo) Upsert(_ context.Context, s repository.SwipeUpsert) error {
	if m.err != nil {
		return m.err
	}
	m.upserts = append(m.upserts, s)
	return nil
}

type mockBlockRepo struct {
	blocked []uuid.UUID
	err     error
}

func (m *mockBlockRepo) BlockedUserIDs(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return m.blocked, m.err
}

type mockCache struct {
	hit      *FeedResult
	lockBusy bool
	getCalls int
	setCalls int
	patterns []string
}

func (m *mockCache) GetJSON(_ context.Context, _ string, out any) (bool, error) {
	m.getCalls++
	if m.hit == nil {
		return false, nil
	}
	*(out.(*FeedResult)) = *m.hit
	return true, nil
}
func (m *mockCache) SetJSON(context.Context, string, any, time.Duration) error {
	m.setCalls++
	return nil
}
func (m *mockCache) Delete(context.Context, string) error { return nil }
func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}
func (m *mockCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return !m.lockBusy, nil
}

func intp(v int) *int { return &v }

func candidateRow(ownerID uuid.UUID, skillID, subID *uuid.UUID, pincode *string, createdAt time.Time) repository.PostRow {
	return repository.PostRow{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		Title:              "post",
		Status:             matching.StatusActive,
		Medium:             matching.MediumOnline,
		RequiredSkillID:    skillID,
		RequiredSubSkillID: subID,
		OwnerActivePincode: pincode,
		CreatedAt:          createdAt,
	}
}

func newFeedUC(posts *mockPostRepo, profiles *mockProfileRepo, addr *mockAddressRepo, swipes *mockSwipeRepo, blocks *mockBlockRepo, cache FeedCache) *PostFeed {
	return NewPostFeedUsecase(posts, profiles, addr, swipes, blocks, cache, time.Minute, nil)
}

func TestGetFeed_ValidationBeforeRepoCalls(t *testing.T) {
	cases := []struct {
		name   string
		params FeedParams
	}{
		{"zero page", FeedParams{Page: intp(0), Criteria: matching.DefaultCriteria()}},
		{"negative page", FeedParams{Page: intp(-1), Criteria: matching.DefaultCriteria()}},
		{"zero limit", FeedParams{Limit: intp(0), Criteria: matching.DefaultCriteria()}},
		{"limit too large", FeedParams{Limit: intp(200), Criteria: matching.DefaultCriteria()}},
		{"bad status", FeedParams{Status: "archived", Criteria: matching.DefaultCriteria()}},
		{"bad medium", FeedParams{Medium: "hybrid", Criteria: matching.DefaultCriteria()}},
		{"score too high", FeedParams{MinMatchScore: intp(150), Criteria: matching.DefaultCriteria()}},
		{"score negative", FeedParams{MinMatchScore: intp(-1), Criteria: matching.DefaultCriteria()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profiles := &mockProfileRepo{exists: true}
			uc := newFeedUC(&mockPostRepo{}, profiles, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)

			_, err := uc.GetFeed(context.Background(), uuid.New(), tc.params)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if profiles.existsCalls != 0 {
				t.Fatalf("validation must fail before any repository call")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field == "" {
				t.Fatalf("expected field-level detail, got %v", err)
			}
		})
	}
}

func TestGetFeed_NilViewer(t *testing.T) {
	uc := newFeedUC(&mockPostRepo{}, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	_, err := uc.GetFeed(context.Background(), uuid.Nil, FeedParams{Criteria: matching.DefaultCriteria()})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetFeed_MissingProfile(t *testing.T) {
	uc := newFeedUC(&mockPostRepo{}, &mockProfileRepo{exists: false}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	_, err := uc.GetFeed(context.Background(), uuid.New(), FeedParams{Criteria: matching.DefaultCriteria()})
	if !errors.Is(err, ErrViewerProfileNotFound) {
		t.Fatalf("expected ErrViewerProfileNotFound, got %v", err)
	}
}

func TestGetFeed_CacheHitShortCircuits(t *testing.T) {
	cached := FeedResult{Pagination: matching.Pagination{TotalItems: 42}}
	cache := &mockCache{hit: &cached}
	posts := &mockPostRepo{}

	uc := newFeedUC(posts, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, cache)
	res, err := uc.GetFeed(context.Background(), uuid.New(), FeedParams{Criteria: matching.DefaultCriteria()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Pagination.TotalItems != 42 {
		t.Fatalf("expected cached result, got %+v", res.Pagination)
	}
	if posts.listCalls != 0 {
		t.Fatalf("cache hit must not read candidates")
	}
}

func TestGetFeed_ScoresAndRanks(t *testing.T) {
	viewerID := uuid.New()
	skillID := uuid.New()
	subID := uuid.New()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	pin := "560001"

	full := candidateRow(uuid.New(), &skillID, &subID, &pin, base)
	partial := candidateRow(uuid.New(), &skillID, nil, nil, base.Add(time.Hour))
	miss := candidateRow(uuid.New(), nil, nil, nil, base.Add(2*time.Hour))

	posts := &mockPostRepo{rows: []repository.PostRow{miss, partial, full}}
	profiles := &mockProfileRepo{exists: true, skills: []uuid.UUID{skillID}, subs: []uuid.UUID{subID}}
	addr := &mockAddressRepo{pincode: pin, active: true}

	uc := newFeedUC(posts, profiles, addr, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	res, err := uc.GetFeed(context.Background(), viewerID, FeedParams{Criteria: matching.DefaultCriteria()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(res.Items))
	}
	if res.Items[0].PostID != full.ID {
		t.Fatalf("expected the full match ranked first")
	}
	if res.Items[0].Match == nil || res.Items[0].Match.Percentage != 100 {
		t.Fatalf("expected 100%% on the full match, got %+v", res.Items[0].Match)
	}
	if res.Items[2].Match == nil || res.Items[2].Match.Percentage != 0 {
		t.Fatalf("expected 0%% on the no-requirement post, got %+v", res.Items[2].Match)
	}

	if res.Criteria.UserDataCounts.Skills == nil || *res.Criteria.UserDataCounts.Skills != 1 {
		t.Fatalf("expected skills count 1 in criteria report")
	}
}

func TestGetFeed_ThresholdAffectsTotals(t *testing.T) {
	viewerID := uuid.New()
	skillID := uuid.New()
	base := time.Now()

	match := candidateRow(uuid.New(), &skillID, nil, nil, base)
	noMatch := candidateRow(uuid.New(), nil, nil, nil, base)

	posts := &mockPostRepo{rows: []repository.PostRow{match, noMatch}}
	profiles := &mockProfileRepo{exists: true, skills: []uuid.UUID{skillID}}

	min := 30
	uc := newFeedUC(posts, profiles, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	res, err := uc.GetFeed(context.Background(), viewerID, FeedParams{
		MinMatchScore: &min,
		Criteria:      matching.DefaultCriteria(),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if res.Pagination.TotalItems != 1 {
		t.Fatalf("totals must reflect the thresholded set, got %d", res.Pagination.TotalItems)
	}
	if len(res.Items) != 1 || res.Items[0].PostID != match.ID {
		t.Fatalf("expected only the matching post to survive")
	}
}

func TestGetFeed_ExclusionsApplied(t *testing.T) {
	viewerID := uuid.New()
	blockedOwner := uuid.New()
	base := time.Now()

	own := candidateRow(viewerID, nil, nil, nil, base)
	blocked := candidateRow(blockedOwner, nil, nil, nil, base)
	swiped := candidateRow(uuid.New(), nil, nil, nil, base)
	visible := candidateRow(uuid.New(), nil, nil, nil, base)

	posts := &mockPostRepo{rows: []repository.PostRow{own, blocked, swiped, visible}}
	profiles := &mockProfileRepo{exists: true}
	swipes := &mockSwipeRepo{swiped: []uuid.UUID{swiped.ID}}
	blocks := &mockBlockRepo{blocked: []uuid.UUID{blockedOwner}}

	uc := newFeedUC(posts, profiles, &mockAddressRepo{}, swipes, blocks, nil)
	res, err := uc.GetFeed(context.Background(), viewerID, FeedParams{Criteria: matching.DefaultCriteria()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Items) != 1 || res.Items[0].PostID != visible.ID {
		t.Fatalf("expected only the unexcluded post, got %d items", len(res.Items))
	}
}

func TestGetFeed_ZeroAxesReturnsUnscored(t *testing.T) {
	viewerID := uuid.New()
	posts := &mockPostRepo{rows: []repository.PostRow{
		candidateRow(uuid.New(), nil, nil, nil, time.Now()),
	}}
	profiles := &mockProfileRepo{exists: true}

	min := 90
	uc := newFeedUC(posts, profiles, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	res, err := uc.GetFeed(context.Background(), viewerID, FeedParams{
		MinMatchScore: &min,
		Criteria:      matching.Criteria{},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(res.Items) != 1 {
		t.Fatalf("zero-axes request must not drop candidates, got %d items", len(res.Items))
	}
	if res.Items[0].Match != nil {
		t.Fatalf("zero-axes request must not attach a match result")
	}
}

func TestGetFeed_RepoFailureIsInternal(t *testing.T) {
	posts := &mockPostRepo{err: errors.New("connection refused")}
	uc := newFeedUC(posts, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)

	_, err := uc.GetFeed(context.Background(), uuid.New(), FeedParams{Criteria: matching.DefaultCriteria()})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestGetFeed_OmittedPaginationDefaults(t *testing.T) {
	viewerID := uuid.New()
	posts := &mockPostRepo{rows: []repository.PostRow{
		candidateRow(uuid.New(), nil, nil, nil, time.Now()),
	}}

	uc := newFeedUC(posts, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, nil)
	res, err := uc.GetFeed(context.Background(), viewerID, FeedParams{Criteria: matching.DefaultCriteria()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Pagination.CurrentPage != 1 || res.Pagination.ItemsPerPage != 10 {
		t.Fatalf("expected page 1 limit 10 defaults, got %+v", res.Pagination)
	}
}

func TestGetFeed_LockWaitHonorsContext(t *testing.T) {
	cache := &mockCache{lockBusy: true}
	posts := &mockPostRepo{}
	uc := newFeedUC(posts, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, cache)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.GetFeed(ctx, uuid.New(), FeedParams{Criteria: matching.DefaultCriteria()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled while waiting on the lock, got %v", err)
	}
	if posts.listCalls != 0 {
		t.Fatalf("cancelled request must not read candidates")
	}
}

func TestGetFeed_StoresResultInCache(t *testing.T) {
	cache := &mockCache{}
	posts := &mockPostRepo{}
	uc := newFeedUC(posts, &mockProfileRepo{exists: true}, &mockAddressRepo{}, &mockSwipeRepo{}, &mockBlockRepo{}, cache)

	if _, err := uc.GetFeed(context.Background(), uuid.New(), FeedParams{Criteria: matching.DefaultCriteria()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected the computed feed to be cached")
	}
}
