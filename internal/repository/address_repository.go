package repository

import (
	"context"
	"database/sql"
	"errors"

	"skillswap/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AddressRepository interface {
	FindActivePincode(ctx context.Context, userID uuid.UUID) (string, bool, error)
}

type PostgresAddressRepository struct {
	db database.DB
}

func NewPostgresAddressRepository(db database.DB) *PostgresAddressRepository {
	return &PostgresAddressRepository{db: db}
}

// FindActivePincode returns the pincode of the user's single currently
// active temporary address; the bool reports whether one exists.
func (r *PostgresAddressRepository) FindActivePincode(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	row := r.db.QueryRow(ctx,
		`SELECT pincode
		 FROM temporary_addresses
		 WHERE user_id = $1 AND is_active
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
	)

	var pincode string
	if err := row.Scan(&pincode); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return pincode, true, nil
}
