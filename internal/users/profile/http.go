// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/accounts/internal/platform/request"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/platform/routes"
)

// GroupUserProfile is the private endpoint group name under /api/v1.
const GroupUserProfile = "user_profile"

// Handler implements profile HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Register adds the private user_profile group to registry.
func (handler *Handler) Register(registry *routes.Registry) {
	registry.Register(routes.Group{Name: GroupUserProfile, Visibility: routes.Private, Handler: handler.Routes()})
}

// Routes returns the profile routes. GET and POST are equivalent.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.getInfo)
	router.Post("/", handler.getInfo)
	return router
}

/*
GetInfo returns the authenticated caller's profile.

GET|POST /api/v1/user_profile/

Response:
  - 200: Profile
  - 401: ErrUnauthorized: Request did not pass the authorization gate
  - 403: ErrForbidden: No profile for this account
*/
func (handler *Handler) getInfo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.profileService.GetInfo(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
