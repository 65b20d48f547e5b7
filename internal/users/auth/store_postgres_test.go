// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/users/auth"
	"github.com/taibuivan/accounts/pkg/pointer"
)

func newMockRepository(t *testing.T) (*auth.PostgresUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return auth.NewUserRepository(mock), mock
}

func newStoredUser() *auth.User {
	return &auth.User{
		ID:           "0190b1e2-7c3a-7d4e-8f00-000000000001",
		FullName:     "A B",
		Email:        "a@b.com",
		PasswordHash: "$2a$10$hash",
		MobileNo:     "1",
		IsActive:     true,
	}
}

var (
	insertUser    = regexp.QuoteMeta("INSERT INTO private.users")
	insertProfile = regexp.QuoteMeta("INSERT INTO public.user_profiles")
)

// Placeholder counts of the user and profile inserts.
const (
	userInsertArgs    = 8
	profileInsertArgs = 9
)

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

/*
TestPostgresUserRepository_Create verifies that user and profile are inserted in one transaction.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	repository, mock := newMockRepository(t)
	user := newStoredUser()

	mock.ExpectBegin()
	mock.ExpectExec(insertUser).
		WithArgs(user.ID, "A B", "a@b.com", "$2a$10$hash", "1", true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(insertProfile).
		WithArgs("profile-1", user.ID, "A B", "a@b.com", "1", true, user.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repository.Create(context.Background(), user, "profile-1"))
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_CreateDuplicate verifies a unique violation rolls back and surfaces DuplicateEmail.
*/
func TestPostgresUserRepository_CreateDuplicate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock pgxmock.PgxPoolIface, violation error)
	}{
		{
			name: "on_user_insert",
			setup: func(mock pgxmock.PgxPoolIface, violation error) {
				mock.ExpectExec(insertUser).WithArgs(anyArgs(userInsertArgs)...).WillReturnError(violation)
			},
		},
		{
			name: "on_profile_insert",
			setup: func(mock pgxmock.PgxPoolIface, violation error) {
				mock.ExpectExec(insertUser).WithArgs(anyArgs(userInsertArgs)...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectExec(insertProfile).WithArgs(anyArgs(profileInsertArgs)...).WillReturnError(violation)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository, mock := newMockRepository(t)
			violation := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}

			mock.ExpectBegin()
			tt.setup(mock, violation)
			mock.ExpectRollback()

			err := repository.Create(context.Background(), newStoredUser(), "profile-1")
			assert.ErrorIs(t, err, apperr.DuplicateEmail())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresUserRepository_FindByEmail covers the hit and miss paths.
*/
func TestPostgresUserRepository_FindByEmail(t *testing.T) {
	repository, mock := newMockRepository(t)
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	query := regexp.QuoteMeta("FROM private.users WHERE email = $1")

	columns := []string{"id", "full_name", "email", "password", "mobile_no", "is_active", "last_logged_in", "created_at", "updated_at"}
	mock.ExpectQuery(query).
		WithArgs("a@b.com").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("user-1", "A B", "a@b.com", "$2a$10$hash", "1", true, (*time.Time)(nil), createdAt, createdAt))

	user, err := repository.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Nil(t, user.LastLoggedIn)
	assert.Equal(t, createdAt, user.CreatedAt)

	mock.ExpectQuery(query).WithArgs("nobody@b.com").WillReturnError(pgx.ErrNoRows)

	user, err = repository.FindByEmail(context.Background(), "nobody@b.com")
	assert.Nil(t, user)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresUserRepository_Update verifies the partial SET clause.
*/
func TestPostgresUserRepository_Update(t *testing.T) {
	repository, mock := newMockRepository(t)
	ctx := context.Background()

	// 1. Password only
	mock.ExpectExec(regexp.QuoteMeta("UPDATE private.users SET password = $1, updated_at = $2 WHERE id = $3")).
		WithArgs("new-hash", pgxmock.AnyArg(), "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repository.Update(ctx, "user-1", auth.Changes{PasswordHash: pointer.To("new-hash")}))

	// 2. Last login on a missing row
	loggedInAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE private.users SET last_logged_in = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(loggedInAt, pgxmock.AnyArg(), "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := repository.Update(ctx, "ghost", auth.Changes{LastLoggedIn: &loggedInAt})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	// 3. Empty change set never reaches the database
	require.NoError(t, repository.Update(ctx, "user-1", auth.Changes{}))

	assert.NoError(t, mock.ExpectationsWereMet())
}
