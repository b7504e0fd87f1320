package matching

import "github.com/google/uuid"

// ExclusionPredicates are injected lookups over moderation state. The engine
// consumes them as booleans; how a block or swipe comes to exist is owned by
// adjacent subsystems.
type ExclusionPredicates struct {
	IsBlocked func(ownerID uuid.UUID) bool
	IsSwiped  func(postID uuid.UUID) bool
}

// FilterEligible drops the viewer's own posts, posts whose owner is blocked
// in either direction, and posts hidden by an active swipe. Status, medium
// and soft-delete filtering belong to the candidate query; ownership is
// re-checked here so a sloppy candidate set cannot leak the viewer's posts.
func FilterEligible(viewerID uuid.UUID, posts []Post, excl ExclusionPredicates) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.OwnerID == viewerID {
			continue
		}
		if excl.IsBlocked != nil && excl.IsBlocked(p.OwnerID) {
			continue
		}
		if excl.IsSwiped != nil && excl.IsSwiped(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out
}
