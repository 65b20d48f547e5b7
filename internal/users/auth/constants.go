// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// PasswordMinLength and PasswordMaxLength bound accepted passwords (characters).
	PasswordMinLength = 5
	PasswordMaxLength = 20
)

// # Response Messages

const (
	MessageSignupDone    = "User SignUp Process 100% Done !"
	MessageAccessGranted = "Access Granted !!"
	MessagePasswordReset = "Your password has been reset successfully!"
	MessageResetIssued   = "If this email is registered, a reset token has been issued."
)

// Background task names, as they appear in logs.
const (
	taskRecordLastLogin = "record_last_login"
)
