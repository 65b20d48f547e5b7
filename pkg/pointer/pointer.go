// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer has small generic helpers for optional fields.
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}
