// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/users/profile"
)

type stubRepository struct {
	profile *profile.Profile
	err     error
}

func (repository stubRepository) FindByUserID(context.Context, string) (*profile.Profile, error) {
	return repository.profile, repository.err
}

func serve(t *testing.T, repository profile.Repository, claims *sec.Claims, method string) *httptest.ResponseRecorder {
	t.Helper()
	handler := profile.NewHandler(profile.NewService(repository))

	request := httptest.NewRequest(method, "/", nil)
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

var caller = &sec.Claims{Identity: sec.Identity{ID: "0190b1e2-7c3a-7d4e-8f00-000000000001", Email: "a@b.com"}}

func TestGetInfo(t *testing.T) {
	found := stubRepository{profile: &profile.Profile{ID: "p-1", UserID: "user-1", Email: "a@b.com"}}

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		recorder := serve(t, found, caller, method)
		assert.Equal(t, http.StatusOK, recorder.Code, method)

		var body struct {
			Data profile.Profile `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "p-1", body.Data.ID)
	}
}

func TestGetInfo_Rejections(t *testing.T) {
	found := stubRepository{profile: &profile.Profile{ID: "p-1"}}
	missing := stubRepository{err: apperr.NotFound("Profile")}
	broken := stubRepository{err: errors.New("connection refused")}

	assert.Equal(t, http.StatusForbidden, serve(t, missing, caller, http.MethodGet).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(t, broken, caller, http.MethodGet).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(t, missing, nil, http.MethodGet).Code)

	malformed := &sec.Claims{Identity: sec.Identity{ID: "not-a-uuid"}}
	assert.Equal(t, http.StatusForbidden, serve(t, found, malformed, http.MethodGet).Code)
}

func TestPostgresRepository_FindByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repository := profile.NewRepository(mock)
	query := regexp.QuoteMeta("FROM public.user_profiles WHERE user_id = $1")
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	city := "Pune"

	columns := []string{"id", "user_id", "full_name", "email", "mobile_no", "street", "city", "state", "pin_code", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery(query).WithArgs("user-1").WillReturnRows(pgxmock.NewRows(columns).
		AddRow("p-1", "user-1", "A B", "a@b.com", "1", (*string)(nil), &city, (*string)(nil), (*string)(nil), true, now, now))

	found, err := repository.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "p-1", found.ID)
	require.NotNil(t, found.City)
	assert.Equal(t, "Pune", *found.City)
	assert.Nil(t, found.Street)

	mock.ExpectQuery(query).WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
	_, err = repository.FindByUserID(context.Background(), "ghost")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
