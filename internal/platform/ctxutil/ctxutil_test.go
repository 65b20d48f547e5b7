// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/pkg/uuid"
)

func TestRequestIDAndLogger(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	requestID := uuid.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil)).With(slog.String("request_id", requestID))

	ctx = ctxutil.WithLogger(ctxutil.WithRequestID(ctx, requestID), logger)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestAuthUser stores claims produced by a real token round trip, the way the
authorization gate does.
*/
func TestAuthUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetAuthUser(ctx))

	tokens, err := sec.NewTokenService("ctx-secret", "accounts.test", time.Hour)
	require.NoError(t, err)

	identity := sec.Identity{ID: uuid.New(), FullName: "A B", Email: "a@b.com", MobileNo: "1"}
	token, err := tokens.Issue(identity)
	require.NoError(t, err)
	claims, err := tokens.Verify(token)
	require.NoError(t, err)

	// 1. Stored pointer comes back unchanged
	ctx = ctxutil.WithAuthUser(ctx, claims)
	retrieved := ctxutil.GetAuthUser(ctx)
	require.NotNil(t, retrieved)
	assert.Same(t, claims, retrieved)

	// 2. Account id is the identity id, not the registered 'jti'
	assert.Equal(t, identity.ID, retrieved.UserID())
	assert.Equal(t, identity, retrieved.Identity)
}
