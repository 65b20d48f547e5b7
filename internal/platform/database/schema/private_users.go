// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column descriptors shared by the SQL stores.
// Queries are assembled from these names so a column rename touches one file.
package schema

import "github.com/taibuivan/accounts/internal/platform/constants"

// PrivateUsersTable represents the 'private.users' table
type PrivateUsersTable struct {
	Table        string
	ID           string
	FullName     string
	Email        string
	Password     string
	MobileNo     string
	IsActive     string
	LastLoggedIn string
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// PrivateUsers is the schema definition for private.users
var PrivateUsers = PrivateUsersTable{
	Table:        constants.SchemaPrivate + ".users",
	ID:           "id",
	FullName:     "full_name",
	Email:        "email",
	Password:     "password",
	MobileNo:     "mobile_no",
	IsActive:     "is_active",
	LastLoggedIn: "last_logged_in",
	CreatedBy:    "created_by",
	UpdatedBy:    "updated_by",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns the columns selected when hydrating a user, in scan order.
func (t PrivateUsersTable) Columns() []string {
	return []string{
		t.ID, t.FullName, t.Email, t.Password, t.MobileNo,
		t.IsActive, t.LastLoggedIn, t.CreatedAt, t.UpdatedAt,
	}
}
