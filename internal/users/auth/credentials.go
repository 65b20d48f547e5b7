// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/validate"
	"github.com/taibuivan/accounts/pkg/normalize"
	"github.com/taibuivan/accounts/pkg/uuid"
)

// Credentials adapts a [UserRepository] into the credential operations the
// flows need. Plaintext passwords enter here and leave only as bcrypt hashes.
type Credentials struct {
	users  UserRepository
	hasher sec.PasswordHasher
}

// NewCredentials wires a repository with the password hashing policy.
func NewCredentials(users UserRepository, hasher sec.PasswordHasher) *Credentials {
	return &Credentials{users: users, hasher: hasher}
}

// FindByEmail looks an account up by its normalized email.
func (credentials *Credentials) FindByEmail(context context.Context, email string) (*User, error) {
	return credentials.users.FindByEmail(context, normalize.Email(email))
}

// FindByID looks an account up by primary key.
func (credentials *Credentials) FindByID(context context.Context, id string) (*User, error) {
	return credentials.users.FindByID(context, id)
}

/*
Create hashes the password and persists the account with its profile.

Parameters:
  - context: context.Context
  - account: NewAccount

Returns:
  - *User: The stored account
  - error: apperr.DuplicateEmail from the store, or hashing/persistence failures
*/
func (credentials *Credentials) Create(context context.Context, account NewAccount) (*User, error) {
	hash, err := credentials.hash(account.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		FullName:     normalize.Name(account.FullName),
		Email:        normalize.Email(account.Email),
		PasswordHash: hash,
		MobileNo:     normalize.Phone(account.MobileNo),
		IsActive:     true,
	}

	if err := credentials.users.Create(context, user, uuid.New()); err != nil {
		return nil, err
	}

	return user, nil
}

// hash runs the hashing policy. Inputs bcrypt cannot take are a validation failure.
func (credentials *Credentials) hash(password string) (string, error) {
	hash, err := credentials.hasher.Hash(password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return "", validate.RequiredError(FieldPassword, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("auth_credentials_hash_failed: %w", err)
	}
	return hash, nil
}

// VerifyPassword compares a candidate against the stored hash in constant time.
func (credentials *Credentials) VerifyPassword(user *User, candidate string) bool {
	if user == nil {
		return false
	}
	return credentials.hasher.Compare(candidate, user.PasswordHash)
}

/*
UpdateFields applies a partial update, hashing a new password first.

Parameters:
  - context: context.Context
  - user: *User (Current state)
  - fields: Fields

Returns:
  - *User: A copy of user with the changes applied
  - error: Hashing or persistence failures
*/
func (credentials *Credentials) UpdateFields(context context.Context, user *User, fields Fields) (*User, error) {
	changes := Changes{LastLoggedIn: fields.LastLoggedIn}
	updated := *user

	if fields.Password != nil {
		hash, err := credentials.hash(*fields.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
		updated.PasswordHash = hash
	}

	if err := credentials.users.Update(context, user.ID, changes); err != nil {
		return nil, err
	}

	if fields.LastLoggedIn != nil {
		updated.LastLoggedIn = fields.LastLoggedIn
	}

	return &updated, nil
}
