// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the identifiers used as primary keys for accounts
and profiles.

Values are UUID version 7, so keys issued later sort after keys issued
earlier and B-tree inserts stay append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics only if the system entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
