package repository

import (
	"context"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

const (
	SwipeLeft  = "left"
	SwipeRight = "right"

	// LeftSwipeTTL is how long a left swipe keeps a post hidden.
	LeftSwipeTTL = 120 * 24 * time.Hour
)

type SwipeUpsert struct {
	UserID    uuid.UUID
	PostID    uuid.UUID
	SwipeType string
	ExpiresAt *time.Time
}

type SwipeRepository interface {
	ActiveSwipedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Upsert(ctx context.Context, s SwipeUpsert) error
}

type PostgresSwipeRepository struct {
	db database.DB
}

func NewPostgresSwipeRepository(db database.DB) *PostgresSwipeRepository {
	return &PostgresSwipeRepository{db: db}
}

// ActiveSwipedPostIDs returns posts hidden for the user: right swipes are
// permanent, left swipes count only until expires_at.
func (r *PostgresSwipeRepository) ActiveSwipedPostIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT post_id
		 FROM post_swipes
		 WHERE user_id = $1
		   AND (swipe_type = 'right' OR (swipe_type = 'left' AND expires_at > now()))`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert is atomic per (user_id, post_id): concurrent swipes on the same
// pair resolve to a single row, and re-swiping updates type and expiry in
// place. The feed's exclusion predicate relies on this.
func (r *PostgresSwipeRepository) Upsert(ctx context.Context, s SwipeUpsert) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO post_swipes (id, user_id, post_id, swipe_type, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, post_id) DO UPDATE SET
			swipe_type = EXCLUDED.swipe_type,
			expires_at = EXCLUDED.expires_at,
			updated_at = now()`,
		uuid.New(), s.UserID, s.PostID, s.SwipeType, s.ExpiresAt,
	)
	return err
}
