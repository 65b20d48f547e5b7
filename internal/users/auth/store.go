// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Emails reaching the repository are already normalized by [Credentials].
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a user and its profile record atomically.

		Parameters:
		  - context: context.Context
		  - user: *User (PasswordHash already set)
		  - profileID: string (ID of the profile row created alongside)

		Returns:
		  - error: apperr.DuplicateEmail on a unique violation, or persistence failures.
		    Nothing is persisted when an error is returned.
	*/
	Create(context context.Context, user *User, profileID string) error

	/*
		Update applies a partial change set to the user row.

		Parameters:
		  - context: context.Context
		  - id: string
		  - changes: Changes

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, id string, changes Changes) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
//
// Only token hashes are stored; the plaintext token leaves the service once.
type ResetTokenRepository interface {

	/*
		Set stores a reset token hash associated with a userID for a limited duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	/*
		Consume atomically reads and deletes a reset token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: UserID the token was issued to
		  - error: apperr.NotFound if absent, expired or already used
	*/
	Consume(context context.Context, tokenHash string) (string, error)
}
