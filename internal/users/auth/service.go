// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/accounts/internal/platform/apperr"
	"github.com/taibuivan/accounts/internal/platform/ctxutil"
	"github.com/taibuivan/accounts/internal/platform/metrics"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/tasks"
	"github.com/taibuivan/accounts/internal/platform/validate"
	"github.com/taibuivan/accounts/pkg/pointer"
)

// # Contracts & Types

// TokenIssuer defines the contract for generating access tokens.
type TokenIssuer interface {
	// Issue creates a signed token for identity. An omitted ttl means the issuer default.
	Issue(identity sec.Identity, ttl ...time.Duration) (string, error)
}

// BackgroundRunner accepts fire-and-forget work.
type BackgroundRunner interface {
	Go(name string, task tasks.Task) error
}

// LoginObserver receives one outcome per login attempt.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// Service implements the account flows.
type Service struct {
	credentials *Credentials
	resetTokens ResetTokenRepository
	tokens      TokenIssuer
	background  BackgroundRunner
	observer    LoginObserver
	now         func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
//
// observer may be nil.
func NewService(
	credentials *Credentials,
	resetTokens ResetTokenRepository,
	tokens TokenIssuer,
	background BackgroundRunner,
	observer LoginObserver,
) *Service {
	return &Service{
		credentials: credentials,
		resetTokens: resetTokens,
		tokens:      tokens,
		background:  background,
		observer:    observer,
		now:         time.Now,
	}
}

func (service *Service) observe(outcome string) {
	if service.observer != nil {
		service.observer.ObserveLogin(outcome)
	}
}

// # Registration Flow

// SignupInput holds the data required to create an account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	MobileNo string
}

/*
Signup creates an account and its profile. No token is issued.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR for an empty password, DuplicateEmail, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	if input.Password == "" {
		return nil, validate.RequiredError(FieldPassword, "password field must NOT be empty")
	}

	user, err := service.credentials.Create(context, NewAccount{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		MobileNo: input.MobileNo,
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_signup_completed", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a successful authentication.
type LoginResult struct {
	Token string
	User  *User
}

/*
Login validates credentials and issues an access token.

Description: Unknown emails and wrong passwords are indistinguishable to the
caller. The last-login timestamp is recorded in the background after the
token is issued; its failure never affects the response.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token and account
  - error: InvalidCredentials, Forbidden (inactive account), or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Unknown email. Same answer as a wrong password to prevent enumeration.
	user, err := service.credentials.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			service.observe(metrics.LoginRejected)
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if !service.credentials.VerifyPassword(user, input.Password) {
		service.observe(metrics.LoginRejected)
		return nil, apperr.InvalidCredentials()
	}

	if !user.IsActive {
		service.observe(metrics.LoginInactive)
		return nil, apperr.Forbidden("Account is inactive")
	}

	token, err := service.tokens.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	service.observe(metrics.LoginSuccess)
	service.recordLastLogin(context, user)

	return &LoginResult{Token: token, User: user}, nil
}

// recordLastLogin submits the last_logged_in update without waiting for it.
func (service *Service) recordLastLogin(ctx context.Context, user *User) {
	loggedInAt := service.now().UTC()
	logger := ctxutil.GetLogger(ctx)

	err := service.background.Go(taskRecordLastLogin, func(taskContext context.Context) error {
		_, err := service.credentials.UpdateFields(taskContext, user, Fields{LastLoggedIn: pointer.To(loggedInAt)})
		return err
	})
	if err != nil {
		logger.WarnContext(ctx, "auth_last_login_not_recorded",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}

// # Password Recovery

/*
ForgotPassword issues a single-use reset token for the account behind email.

Description: An unknown email is not an error (prevents user enumeration);
the returned token is empty in that case. Only the token digest is stored.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Plaintext reset token, or "" when no account matched
  - error: Generation or storage failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) (string, error) {
	user, err := service.credentials.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokens.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

// ResetInput completes the forgot-password flow.
type ResetInput struct {
	Email    string
	Password string
	Token    string
}

/*
ResetPassword replaces the password of the account a reset token was issued to.

Description: The token is consumed before anything else, so a token presented
with the wrong email is spent as well.

Parameters:
  - context: context.Context
  - input: ResetInput

Returns:
  - error: VALIDATION_ERROR, INVALID_TOKEN, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, input ResetInput) error {
	if input.Password == "" {
		return validate.RequiredError(FieldPassword, "password field must NOT be empty")
	}
	if input.Token == "" {
		return validate.RequiredError(FieldToken, "token field must NOT be empty")
	}

	userID, err := service.resetTokens.Consume(context, sec.HashToken(input.Token))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.InvalidToken("Reset token is invalid or expired")
		}
		return err
	}

	user, err := service.credentials.FindByEmail(context, input.Email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.InvalidToken("Reset token is invalid or expired")
		}
		return err
	}

	if user.ID != userID {
		return apperr.InvalidToken("Reset token is invalid or expired")
	}

	return service.setPassword(context, user, input.Password)
}

/*
ResetOwnPassword replaces the password of the authenticated caller.

Parameters:
  - context: context.Context
  - userID: string (From the verified token)
  - password: string

Returns:
  - error: VALIDATION_ERROR, NOT_FOUND, or storage failures
*/
func (service *Service) ResetOwnPassword(context context.Context, userID, password string) error {
	if password == "" {
		return validate.RequiredError(FieldPassword, "password field must NOT be empty")
	}

	user, err := service.credentials.FindByID(context, userID)
	if err != nil {
		return err
	}

	return service.setPassword(context, user, password)
}

func (service *Service) setPassword(context context.Context, user *User, password string) error {
	if _, err := service.credentials.UpdateFields(context, user, Fields{Password: &password}); err != nil {
		return fmt.Errorf("auth_service_reset_password_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_password_reset", slog.String("user_id", user.ID))
	return nil
}
