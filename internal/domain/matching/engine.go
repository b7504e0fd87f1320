package matching

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusHold      = "hold"
	StatusDiscussed = "discussed"
	StatusCompleted = "completed"
	StatusDeleted   = "deleted"
)

const (
	MediumOnline  = "online"
	MediumOffline = "offline"
)

// axisPoints is the weight of one fully matched axis. A criterion the post
// never declared, or declared but the viewer does not satisfy, earns 0; the
// ceiling stays at axisPoints per enabled axis either way.
const axisPoints = 2

type Viewer struct {
	UserID        uuid.UUID
	SkillIDs      map[uuid.UUID]struct{}
	SubSkillIDs   map[uuid.UUID]struct{}
	ActivePincode *string
}

type Post struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Status             string
	Medium             string
	RequiredSkillID    *uuid.UUID
	RequiredSubSkillID *uuid.UUID
	OwnerActivePincode *string
	CreatedAt          time.Time
}

type Criteria struct {
	Skills    bool
	SubSkills bool
	Location  bool
}

func DefaultCriteria() Criteria {
	return Criteria{Skills: true, SubSkills: true, Location: true}
}

func (c Criteria) EnabledCount() int {
	n := 0
	if c.Skills {
		n++
	}
	if c.SubSkills {
		n++
	}
	if c.Location {
		n++
	}
	return n
}

type Reasons struct {
	SkillMatch    bool
	SubSkillMatch bool
	LocationMatch bool
}

type Result struct {
	PostID     uuid.UUID
	Score      int
	MaxScore   int
	Percentage int
	Reasons    Reasons
}

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusHold, StatusDiscussed, StatusCompleted, StatusDeleted:
		return true
	}
	return false
}

func ValidMedium(m string) bool {
	return m == MediumOnline || m == MediumOffline
}

// Score evaluates one candidate against the viewer for the enabled axes.
// With zero enabled axes MaxScore stays 0 and no scoring applies; callers
// treat that as the unscored branch, never as an error.
func Score(v Viewer, p Post, c Criteria) Result {
	res := Result{PostID: p.ID}

	if c.Skills {
		res.MaxScore += axisPoints
		if p.RequiredSkillID != nil {
			if _, ok := v.SkillIDs[*p.RequiredSkillID]; ok {
				res.Score += axisPoints
				res.Reasons.SkillMatch = true
			}
		}
	}

	if c.SubSkills {
		res.MaxScore += axisPoints
		if p.RequiredSubSkillID != nil {
			if _, ok := v.SubSkillIDs[*p.RequiredSubSkillID]; ok {
				res.Score += axisPoints
				res.Reasons.SubSkillMatch = true
			}
		}
	}

	if c.Location {
		res.MaxScore += axisPoints
		if v.ActivePincode != nil && p.OwnerActivePincode != nil && *v.ActivePincode == *p.OwnerActivePincode {
			res.Score += axisPoints
			res.Reasons.LocationMatch = true
		}
	}

	if res.MaxScore > 0 {
		pct := int(math.Round(float64(res.Score) / float64(res.MaxScore) * 100))
		res.Percentage = clampInt(pct, 0, 100)
	}

	return res
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
