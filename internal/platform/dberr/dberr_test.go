// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound},
		{"unique_violation", unique, http.StatusConflict},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "User"))
			if assert.NotNil(t, appError) {
				assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
			}
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "User"))
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}

	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))

	assert.Equal(t, "users_email_key", dberr.ConstraintName(unique))
	assert.Empty(t, dberr.ConstraintName(errors.New("boom")))
}
