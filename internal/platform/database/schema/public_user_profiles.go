// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

import "github.com/taibuivan/accounts/internal/platform/constants"

// UserProfilesTable represents the 'public.user_profiles' table
type UserProfilesTable struct {
	Table     string
	ID        string
	UserID    string
	FullName  string
	Email     string
	MobileNo  string
	Street    string
	City      string
	State     string
	PinCode   string
	IsActive  string
	CreatedBy string
	UpdatedBy string
	CreatedAt string
	UpdatedAt string
}

// UserProfiles is the schema definition for public.user_profiles
var UserProfiles = UserProfilesTable{
	Table:     constants.SchemaPublic + ".user_profiles",
	ID:        "id",
	UserID:    "user_id",
	FullName:  "full_name",
	Email:     "email",
	MobileNo:  "mobile_no",
	Street:    "street",
	City:      "city",
	State:     "state",
	PinCode:   "pin_code",
	IsActive:  "is_active",
	CreatedBy: "created_by",
	UpdatedBy: "updated_by",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns the columns selected when hydrating a profile, in scan order.
func (t UserProfilesTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.FullName, t.Email, t.MobileNo, t.Street, t.City,
		t.State, t.PinCode, t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
