// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/tasks"
	"github.com/taibuivan/accounts/internal/users/auth"
)

// # Test Doubles

// memoryUsers is an in-memory UserRepository keyed like the real table.
type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]*auth.User
	byEmail   map[string]string
	updateErr error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}, byEmail: map[string]string{}}
}

func (repository *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *memoryUsers) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	repository.mu.Lock()
	id, ok := repository.byEmail[email]
	repository.mu.Unlock()

	if !ok {
		return nil, apperr.NotFound("User")
	}
	return repository.FindByID(ctx, id)
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User, profileID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if profileID == "" {
		return errors.New("profile id required")
	}
	if _, exists := repository.byEmail[user.Email]; exists {
		return apperr.DuplicateEmail()
	}

	copied := *user
	repository.byID[user.ID] = &copied
	repository.byEmail[user.Email] = user.ID
	return nil
}

func (repository *memoryUsers) Update(_ context.Context, id string, changes auth.Changes) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.updateErr != nil {
		return repository.updateErr
	}

	user, ok := repository.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	if changes.LastLoggedIn != nil {
		at := *changes.LastLoggedIn
		user.LastLoggedIn = &at
	}
	if changes.PasswordHash != nil {
		user.PasswordHash = *changes.PasswordHash
	}
	return nil
}

func (repository *memoryUsers) setActive(email string, active bool) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.byID[repository.byEmail[email]].IsActive = active
}

// memoryResetTokens is an in-memory ResetTokenRepository without expiry.
type memoryResetTokens struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (repository *memoryResetTokens) Set(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.tokens[tokenHash] = userID
	return nil
}

func (repository *memoryResetTokens) Consume(_ context.Context, tokenHash string) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	userID, ok := repository.tokens[tokenHash]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	delete(repository.tokens, tokenHash)
	return userID, nil
}

// # Fixture

type fixture struct {
	service  *auth.Service
	users    *memoryUsers
	tokens   *sec.TokenService
	runner   *tasks.Runner
	resets   *memoryResetTokens
	observed []string
}

func (f *fixture) ObserveLogin(outcome string) {
	f.observed = append(f.observed, outcome)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret", "accounts.test", 2*time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		users:  newMemoryUsers(),
		tokens: tokens,
		runner: tasks.NewRunner(logger, 8, time.Second),
		resets: &memoryResetTokens{tokens: map[string]string{}},
	}

	credentials := auth.NewCredentials(f.users, sec.NewPasswordHasher(bcrypt.MinCost))
	f.service = auth.NewService(credentials, f.resets, tokens, f.runner, f)

	t.Cleanup(func() { _ = f.runner.Close(context.Background()) })
	return f
}

var sampleSignup = auth.SignupInput{
	FullName: "A B",
	Email:    "a@b.com",
	Password: "hunter2",
	MobileNo: "1",
}
