// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile serves the caller's public profile record.

The profile row is created together with the account at signup; this package
only reads it. Every endpoint here sits behind the authorization gate.
*/
package profile

import "time"

// Profile is a row of public.user_profiles.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	MobileNo  string    `json:"mobile_no"`
	Street    *string   `json:"street"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	PinCode   *string   `json:"pin_code"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
