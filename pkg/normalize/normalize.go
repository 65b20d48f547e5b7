// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package normalize canonicalizes user-supplied identity fields before they are
// stored or compared.
//
// # Usage
//
// Emails are the login key, so "Alice@Example.COM " and "alice@example.com"
// must resolve to the same account. Names keep their case and accents but are
// brought to a single Unicode form so equal-looking names compare equal.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	// innerSpace collapses runs of whitespace inside names.
	innerSpace = regexp.MustCompile(`\s+`)

	// folder applies full Unicode case folding (ß -> ss, K (Kelvin) -> k).
	folder = cases.Fold()
)

// Email trims, NFC-normalizes and case-folds an email address.
func Email(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Name trims, NFC-normalizes and collapses inner whitespace of a display name.
//
// 1. Composes decomposed sequences (e + combining acute -> é).
// 2. Collapses whitespace runs to a single space.
func Name(s string) string {
	result := norm.NFC.String(strings.TrimSpace(s))
	return innerSpace.ReplaceAllString(result, " ")
}

// Phone strips surrounding whitespace and inner spaces from a mobile number.
func Phone(s string) string {
	return strings.Join(strings.Fields(s), "")
}
