// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/database/schema"
	"github.com/taibuivan/accounts/internal/platform/dberr"
)

// DB is the subset of [pgxpool.Pool] used by the repository.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var (
	usersTable    = schema.PrivateUsers
	profilesTable = schema.UserProfiles
)

/*
Create persists a new user and its public profile in a single transaction.

Description: Email uniqueness is enforced by the database. A unique violation
on either table rolls the whole transaction back and surfaces as DuplicateEmail.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)
  - profileID: string

Returns:
  - error: apperr.DuplicateEmail or wrapped database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User, profileID string) (err error) {
	insertUser := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		usersTable.Table, usersTable.ID, usersTable.FullName, usersTable.Email, usersTable.Password,
		usersTable.MobileNo, usersTable.IsActive, usersTable.CreatedAt, usersTable.UpdatedAt,
	)

	insertProfile := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		profilesTable.Table, profilesTable.ID, profilesTable.UserID, profilesTable.FullName, profilesTable.Email,
		profilesTable.MobileNo, profilesTable.IsActive, profilesTable.CreatedBy, profilesTable.CreatedAt, profilesTable.UpdatedAt,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	tx, err := repository.db.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_begin_failed: %w", err)
	}

	// Any failure below leaves neither row behind.
	defer func() {
		if err != nil {
			_ = tx.Rollback(context)
		}
	}()

	if _, err = tx.Exec(context, insertUser,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.MobileNo,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return classifyInsert(err)
	}

	if _, err = tx.Exec(context, insertProfile,
		profileID,
		user.ID,
		user.FullName,
		user.Email,
		user.MobileNo,
		user.IsActive,
		user.ID,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		return classifyInsert(err)
	}

	if err = tx.Commit(context); err != nil {
		return fmt.Errorf("postgres_user_repo_commit_failed: %w", err)
	}

	return nil
}

// classifyInsert maps a unique violation to DuplicateEmail; every unique
// constraint on the insert path is keyed on email or on the fresh user id.
func classifyInsert(err error) error {
	if dberr.IsUniqueViolation(err) {
		return apperr.DuplicateEmail()
	}
	return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string (normalized)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, usersTable.Email, email)
}

/*
FindByID retrieves a user record by primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, usersTable.ID, id)
}

func (repository *PostgresUserRepository) findOne(context context.Context, column, value string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(usersTable.Columns(), ", "), usersTable.Table, column,
	)

	user := &User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.MobileNo,
		&user.IsActive,
		&user.LastLoggedIn,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_%s_failed: %w", column, err)
	}

	return user, nil
}

/*
Update applies the non-nil members of changes and refreshes updated_at.

Parameters:
  - context: context.Context
  - id: string
  - changes: Changes

Returns:
  - error: apperr.NotFound when no row matched, or database errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, id string, changes Changes) error {
	assignments := make([]string, 0, 3)
	arguments := make([]any, 0, 4)

	add := func(column string, value any) {
		arguments = append(arguments, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	if changes.LastLoggedIn != nil {
		add(usersTable.LastLoggedIn, *changes.LastLoggedIn)
	}
	if changes.PasswordHash != nil {
		add(usersTable.Password, *changes.PasswordHash)
	}

	// Nothing to change.
	if len(arguments) == 0 {
		return nil
	}

	add(usersTable.UpdatedAt, time.Now().UTC())
	arguments = append(arguments, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`,
		usersTable.Table, strings.Join(assignments, ", "), usersTable.ID, len(arguments),
	)

	tag, err := repository.db.Exec(context, query, arguments...)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
