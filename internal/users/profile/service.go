// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/pkg/uuid"
)

// Service implements profile use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
GetInfo returns the caller's profile.

A verified caller without a profile row is refused rather than told the
record is missing.

Returns:
  - *Profile: The caller's profile
  - error: apperr.Forbidden when no profile exists, or storage failures
*/
func (service *Service) GetInfo(context context.Context, userID string) (*Profile, error) {
	if !uuid.Valid(userID) {
		return nil, apperr.Forbidden("Forbidden")
	}

	profile, err := service.repository.FindByUserID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Forbidden("Forbidden")
		}
		return nil, err
	}
	return profile, nil
}
