// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/constants"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/metrics"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/platform/sec"
)

// MessageNotAuthorized is returned when a private group is called without a usable token.
const MessageNotAuthorized = "You are not an authorized user!"

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// [*sec.TokenService] satisfies it; tests inject fakes.
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// GateObserver receives one outcome per gate decision (see the metrics.Gate* constants).
type GateObserver interface {
	ObserveGate(outcome string)
}

// RequireToken guards a private endpoint group.
//
// # Flow
//  1. Extract 'Authorization: Bearer <token>'. A missing header, a foreign
//     scheme, or a token of "", "null" or "undefined" aborts with 401.
//  2. Verify the token via [TokenVerifier]. Expired or invalid tokens abort
//     with 400 and the verification message.
//  3. Attach the [*sec.Claims] to the request context and call the handler.
//
// The handler never runs unless step 3 is reached. No revocation list is consulted.
//
// # Parameters
//   - verifier: The TokenVerifier instance.
//   - observer: Optional outcome sink; nil disables counting.
func RequireToken(verifier TokenVerifier, observer GateObserver) func(http.Handler) http.Handler {
	observe := func(outcome string) {
		if observer != nil {
			observer.ObserveGate(outcome)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Token extraction
			token, ok := BearerToken(request)
			if !ok {
				observe(metrics.GateMissing)
				respond.Error(writer, request, apperr.Unauthorized(MessageNotAuthorized))
				return
			}

			// 2. Verification
			claims, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					observe(metrics.GateExpired)
					respond.Error(writer, request, apperr.ExpiredToken(sec.ErrTokenExpired.Error()))
					return
				}
				if errors.Is(err, sec.ErrTokenMissing) {
					observe(metrics.GateMissing)
					respond.Error(writer, request, apperr.Unauthorized(MessageNotAuthorized))
					return
				}
				observe(metrics.GateInvalid)
				respond.Error(writer, request, apperr.InvalidToken(sec.ErrTokenInvalid.Error()))
				return
			}

			// 3. Admission
			observe(metrics.GateAdmitted)
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctxutil.GetLogger(ctx).DebugContext(ctx, "auth_gate_admitted", slog.String("user_id", claims.UserID()))

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken returns the token from an 'Authorization: Bearer <token>' header.
//
// The scheme is matched case-insensitively. Placeholder values that browser
// clients send when no token is stored ("null", "undefined") count as absent.
func BearerToken(request *http.Request) (string, bool) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	switch token {
	case "", "null", "undefined":
		return "", false
	}

	return token, true
}
