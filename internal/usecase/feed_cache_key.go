package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type feedCacheKeyInput struct {
	Page          int    `json:"page"`
	Limit         int    `json:"limit"`
	Status        string `json:"status"`
	Medium        string `json:"medium"`
	MinMatchScore *int   `json:"min_match_score"`
	MatchSkills   bool   `json:"match_skills"`
	MatchSubs     bool   `json:"match_sub_skills"`
	MatchLocation bool   `json:"match_location"`
}

// FeedCacheKey is scoped per viewer so invalidation on swipe can wipe the
// viewer's pages with a single pattern delete.
func FeedCacheKey(viewerID uuid.UUID, params FeedParams) string {
	page, limit := 0, 0
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	in := feedCacheKeyInput{
		Page:          page,
		Limit:         limit,
		Status:        strings.TrimSpace(params.Status),
		Medium:        strings.TrimSpace(params.Medium),
		MinMatchScore: params.MinMatchScore,
		MatchSkills:   params.Criteria.Skills,
		MatchSubs:     params.Criteria.SubSkills,
		MatchLocation: params.Criteria.Location,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "feed:" + viewerID.String() + ":" + hex.EncodeToString(sum[:])
}

func FeedCachePattern(viewerID uuid.UUID) string {
	return "feed:" + viewerID.String() + ":*"
}

func FeedLockKey(feedKey string) string {
	if strings.HasPrefix(feedKey, "feed:") {
		return "feed:lock:" + strings.TrimPrefix(feedKey, "feed:")
	}
	return "feed:lock:" + feedKey
}
