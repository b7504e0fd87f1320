package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPostNotFound = errors.New("post not found")

type PostRow struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	Title              string
	Description        string
	Status             string
	Medium             string
	RequiredSkillID    *uuid.UUID
	RequiredSubSkillID *uuid.UUID
	OwnerActivePincode *string
	CreatedAt          time.Time
}

type CandidateFilter struct {
	ViewerID uuid.UUID
	Status   string
	Medium   string
}

type PostRepository interface {
	ListCandidates(ctx context.Context, f CandidateFilter) ([]PostRow, error)
	FindOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type PostgresPostRepository struct {
	db database.DB
}

func NewPostgresPostRepository(db database.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// ListCandidates excludes the viewer's own posts and soft-deleted rows at
// the query level; the owner's currently active temporary-address pincode
// rides along via the join. Block and swipe exclusion happen in memory.
func (r *PostgresPostRepository) ListCandidates(ctx context.Context, f CandidateFilter) ([]PostRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.owner_id, p.title, COALESCE(p.description, ''), p.status, p.medium,
		        p.required_skill_id, p.required_sub_skill_id, ta.pincode, p.created_at
		 FROM posts p
		 LEFT JOIN temporary_addresses ta ON ta.user_id = p.owner_id AND ta.is_active
		 WHERE p.deleted_at IS NULL
		   AND p.owner_id <> $1
		   AND p.status = $2
		   AND ($3 = '' OR p.medium = $3)
		 ORDER BY p.created_at DESC`,
		f.ViewerID, f.Status, f.Medium,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PostRow, 0)
	for rows.Next() {
		var p PostRow
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Status, &p.Medium,
			&p.RequiredSkillID, &p.RequiredSubSkillID, &p.OwnerActivePincode, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPostRepository) FindOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	row := r.db.QueryRow(ctx, `SELECT owner_id FROM posts WHERE id = $1 AND deleted_at IS NULL`, id)

	var ownerID uuid.UUID
	if err := row.Scan(&ownerID); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ErrPostNotFound
		}
		return uuid.Nil, err
	}
	return ownerID, nil
}
