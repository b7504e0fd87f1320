package repository

import (
	"context"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

type BlockRepository interface {
	BlockedUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresBlockRepository struct {
	db database.DB
}

func NewPostgresBlockRepository(db database.DB) *PostgresBlockRepository {
	return &PostgresBlockRepository{db: db}
}

// BlockedUserIDs is bidirectional: users this user blocked and users who
// blocked this user. Either direction excludes the pair from each other's
// feeds.
func (r *PostgresBlockRepository) BlockedUserIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT blocked_id FROM user_blocks WHERE blocker_id = $1
		 UNION
		 SELECT blocker_id FROM user_blocks WHERE blocked_id = $1`,
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
