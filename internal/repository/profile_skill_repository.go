package repository

import (
	"context"

	"skillswap/internal/database"

	"github.com/google/uuid"
)

type ProfileSkillRepository interface {
	ProfileExists(ctx context.Context, userID uuid.UUID) (bool, error)
	FindSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	FindSubSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresProfileSkillRepository struct {
	db database.DB
}

func NewPostgresProfileSkillRepository(db database.DB) *PostgresProfileSkillRepository {
	return &PostgresProfileSkillRepository{db: db}
}

func (r *PostgresProfileSkillRepository) ProfileExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM work_profiles WHERE user_id = $1)`, userID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresProfileSkillRepository) FindSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.findIDs(ctx,
		`SELECT ws.skill_id
		 FROM work_profile_skills ws
		 JOIN work_profiles wp ON wp.id = ws.work_profile_id
		 WHERE wp.user_id = $1`,
		userID,
	)
}

func (r *PostgresProfileSkillRepository) FindSubSkillIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.findIDs(ctx,
		`SELECT wss.sub_skill_id
		 FROM work_profile_sub_skills wss
		 JOIN work_profiles wp ON wp.id = wss.work_profile_id
		 WHERE wp.user_id = $1`,
		userID,
	)
}

func (r *PostgresProfileSkillRepository) findIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, userID)
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
