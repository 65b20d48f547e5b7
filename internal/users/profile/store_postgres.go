// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/accounts/internal/platform/database/schema"
	"github.com/taibuivan/accounts/internal/platform/dberr"
)

// Repository defines the data access contract for profiles.
type Repository interface {
	// FindByUserID returns the profile owned by userID, or apperr NOT_FOUND.
	FindByUserID(context context.Context, userID string) (*Profile, error)
}

// Querier is the subset of [pgxpool.Pool] used by the repository.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db Querier
}

// NewRepository creates a new Postgres implementation for profile lookups.
func NewRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindByUserID retrieves the profile linked to an account.

Parameters:
  - context: context.Context
  - userID: string (UUID)

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	table := schema.UserProfiles
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.UserID,
	)

	profile := &Profile{}
	err := repository.db.QueryRow(context, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.MobileNo,
		&profile.Street,
		&profile.City,
		&profile.State,
		&profile.PinCode,
		&profile.IsActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Profile")
	}

	return profile, nil
}
