// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. The [TokenService] is the single owner of the signing
// secret and the expiry policy; everything else sees only [Identity] values.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Errors

var (
	// ErrSigningKey is returned when no signing secret is configured.
	ErrSigningKey = errors.New("sec: signing secret is not configured")

	// ErrTokenMissing is returned when an empty token string is presented.
	ErrTokenMissing = errors.New("token is missing")

	// ErrTokenExpired is returned when a correctly signed token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers bad signatures, malformed structure and foreign algorithms.
	ErrTokenInvalid = errors.New("token is invalid")
)

// # Claims

// Identity is the caller description embedded in every access token.
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	MobileNo string `json:"mobile_no"`
}

// Claims represents the payload of a verified access token.
//
// The [Identity] fields are flattened next to the registered claims so the
// wire format stays {id, full_name, email, mobile_no, iss, sub, iat, exp}.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// UserID returns the account id carried by the token.
//
// Both embedded structs declare an ID field ('id' and 'jti'), so the
// account id must be read through Identity.
func (claims *Claims) UserID() string {
	return claims.Identity.ID
}

// # Token Service

// TokenService issues and verifies HS256 access tokens.
//
// # Concurrency
//
// TokenService is immutable after construction and safe for concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
//
// # Parameters
//   - secret: HMAC signing secret, read once from configuration.
//   - issuer: Value of the 'iss' claim, enforced on verification.
//   - defaultTTL: Lifetime applied when [TokenService.Issue] gets no override.
func NewTokenService(secret, issuer string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrSigningKey
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("sec: default token ttl must be positive, got %s", defaultTTL)
	}

	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// DefaultTTL reports the lifetime applied to tokens without an explicit TTL.
func (service *TokenService) DefaultTTL() time.Duration {
	return service.defaultTTL
}

/*
Issue serializes identity into a signed, time-limited token.

Parameters:
  - identity: Identity (Caller attributes to embed)
  - ttl: Optional lifetime; omitted or non-positive means the default TTL

Returns:
  - string: Signed JWT
  - error: ErrSigningKey when the service has no secret, or signing failures
*/
func (service *TokenService) Issue(identity Identity, ttl ...time.Duration) (string, error) {
	if service == nil || len(service.secret) == 0 {
		return "", ErrSigningKey
	}

	lifetime := service.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		lifetime = ttl[0]
	}

	currentTime := service.now()
	claims := Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
Verify checks the signature, algorithm, issuer and expiry of a token and
returns its claims.

Claims are only decoded by the parser after the signature matched, so an
unverified payload is never handed back to callers.

Returns:
  - *Claims: Decoded claims of a valid token
  - error: ErrTokenMissing, ErrTokenExpired, ErrTokenInvalid or ErrSigningKey
*/
func (service *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}
	if service == nil || len(service.secret) == 0 {
		return nil, ErrSigningKey
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return service.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	case !token.Valid:
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
