package dto

import "github.com/google/uuid"

type FeedPostResponse struct {
	PostID             uuid.UUID           `json:"post_id"`
	OwnerID            uuid.UUID           `json:"owner_id"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	Status             string              `json:"status"`
	Medium             string              `json:"medium"`
	RequiredSkillID    *uuid.UUID          `json:"required_skill_id"`
	RequiredSubSkillID *uuid.UUID          `json:"required_sub_skill_id"`
	CreatedAt          string              `json:"created_at"`
	MatchScore         *MatchScoreResponse `json:"match_score,omitempty"`
}

type MatchScoreResponse struct {
	Score      int                  `json:"score"`
	MaxScore   int                  `json:"max_score"`
	Percentage int                  `json:"percentage"`
	Reasons    MatchReasonsResponse `json:"reasons"`
}

type MatchReasonsResponse struct {
	SkillMatch    bool `json:"skill_match"`
	SubSkillMatch bool `json:"sub_skill_match"`
	LocationMatch bool `json:"location_match"`
}

type PaginationResponse struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

type MatchingCriteriaResponse struct {
	Enabled        CriteriaEnabledResponse `json:"enabled"`
	UserDataCounts UserDataCountsResponse  `json:"user_data_counts"`
}

type CriteriaEnabledResponse struct {
	Skills    bool `json:"skills"`
	SubSkills bool `json:"sub_skills"`
	Location  bool `json:"location"`
}

// Counts are null when the corresponding axis is disabled.
type UserDataCountsResponse struct {
	Skills    *int `json:"skills"`
	SubSkills *int `json:"sub_skills"`
	Locations *int `json:"locations"`
}

type FeedResponse struct {
	Posts            []FeedPostResponse       `json:"posts"`
	Pagination       PaginationResponse       `json:"pagination"`
	MatchingCriteria MatchingCriteriaResponse `json:"matching_criteria"`
}
