package matching

import "sort"

// ScoredPost pairs a candidate with its match result. Result is nil when the
// request disabled every axis and scoring was skipped.
type ScoredPost struct {
	Post   Post
	Result *Result
}

type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

type UserDataCounts struct {
	Skills    *int
	SubSkills *int
	Locations *int
}

type CriteriaReport struct {
	Enabled        Criteria
	UserDataCounts UserDataCounts
}

// Rank orders by percentage descending, ties broken by recency (newest
// first). Stable, so equal keys keep their candidate-set order.
func Rank(items []ScoredPost) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := percentageOf(items[i]), percentageOf(items[j])
		if pi != pj {
			return pi > pj
		}
		return items[i].Post.CreatedAt.After(items[j].Post.CreatedAt)
	})
}

// Threshold keeps candidates at or above minScore. Applied before
// pagination so the reported totals reflect the filtered set. Unscored
// items pass through untouched.
func Threshold(items []ScoredPost, minScore *int) []ScoredPost {
	if minScore == nil {
		return items
	}
	out := make([]ScoredPost, 0, len(items))
	for _, it := range items {
		if it.Result == nil {
			out = append(out, it)
			continue
		}
		if it.Result.Percentage >= *minScore {
			out = append(out, it)
		}
	}
	return out
}

func Paginate(items []ScoredPost, page, limit int) ([]ScoredPost, Pagination) {
	total := len(items)
	pg := Pagination{
		CurrentPage:  page,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
	if limit > 0 {
		pg.TotalPages = (total + limit - 1) / limit
	}

	offset := (page - 1) * limit
	if offset >= total {
		return []ScoredPost{}, pg
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], pg
}

// Report summarizes the enabled axes and how much reference data the viewer
// brought. Informational only; it never feeds back into scoring.
func Report(v Viewer, c Criteria) CriteriaReport {
	rep := CriteriaReport{Enabled: c}
	if c.Skills {
		n := len(v.SkillIDs)
		rep.UserDataCounts.Skills = &n
	}
	if c.SubSkills {
		n := len(v.SubSkillIDs)
		rep.UserDataCounts.SubSkills = &n
	}
	if c.Location {
		n := 0
		if v.ActivePincode != nil {
			n = 1
		}
		rep.UserDataCounts.Locations = &n
	}
	return rep
}

func percentageOf(it ScoredPost) int {
	if it.Result == nil {
		return 0
	}
	return it.Result.Percentage
}
