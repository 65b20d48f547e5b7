// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away common body decoding patterns and access to the identity
admitted by the authorization gate, ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies; account payloads are tiny.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Claims extracts the authenticated caller claims from the request context.

Returns nil if the request did not pass the authorization gate.
*/
func Claims(request *http.Request) *sec.Claims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the caller claims.

Returns:
  - *sec.Claims: The authenticated caller claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.Claims, error) {

	// Get caller claims
	claims := Claims(request)

	// If the caller is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("You are not an authorized user!")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently authenticated caller.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get caller claims
	claims, err := RequiredClaims(request)

	// If the caller is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID(), nil
}
