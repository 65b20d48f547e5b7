// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account identity: signup, login, and password reset.

It defines the core domain entities and the credential handling rules that
every flow goes through.

# Architecture

  - Credentials: the only place passwords are hashed or compared.
  - Service: the account flows (Signup, Login, ForgotPassword, ResetPassword).
  - Handler: the public "auth" group and the private "account" group.
*/
package auth

import (
	"time"

	"github.com/taibuivan/accounts/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account, stored in private.users.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	MobileNo     string     `json:"mobile_no"`
	IsActive     bool       `json:"is_active"`
	LastLoggedIn *time.Time `json:"last_logged_in,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Identity returns the token claims carried for this user.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		MobileNo: user.MobileNo,
	}
}

// NewAccount is the signup payload accepted by [Credentials.Create].
type NewAccount struct {
	FullName string
	Email    string
	Password string
	MobileNo string
}

// Fields is a partial update applied by [Credentials.UpdateFields].
// Nil members are left untouched.
type Fields struct {
	LastLoggedIn *time.Time
	Password     *string
}

// Changes is the storage-level form of [Fields]: passwords are already hashed.
type Changes struct {
	LastLoggedIn *time.Time
	PasswordHash *string
}

// # Field Identifiers

// Field names for validation and response payloads in the authentication domain.
const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldMobileNo = "mobile_no"
	FieldToken    = "token"
	FieldMessage  = "message"
)
