// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/accounts/internal/platform/request"
	"github.com/taibuivan/accounts/internal/platform/respond"
	"github.com/taibuivan/accounts/internal/platform/routes"
	"github.com/taibuivan/accounts/internal/platform/sec"
	"github.com/taibuivan/accounts/internal/platform/validate"
)

// Endpoint group names under /api/v1.
const (
	GroupAuth    = "auth"
	GroupAccount = "account"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// The public "auth" group holds the entry points (signup, login, password
// recovery). The private "account" group holds operations on the caller's
// own account and is only reached through the authorization gate.
type Handler struct {
	authService      *Service
	exposeResetToken bool
}

// NewHandler constructs a new [Handler] with its service dependency.
//
// exposeResetToken returns issued reset tokens in the forgot-password
// response; it is meant for development and test setups without mail delivery.
func NewHandler(service *Service, exposeResetToken bool) *Handler {
	return &Handler{authService: service, exposeResetToken: exposeResetToken}
}

// Register adds the handler's endpoint groups to registry.
func (handler *Handler) Register(registry *routes.Registry) {
	registry.Register(routes.Group{Name: GroupAuth, Visibility: routes.Public, Handler: handler.Routes()})
	registry.Register(routes.Group{Name: GroupAccount, Visibility: routes.Private, Handler: handler.AccountRoutes()})
}

// Routes returns the public authentication routes.
//
// # Endpoints
//   - POST /signup          : Creates a new account.
//   - POST /login           : Authenticates and returns a JWT.
//   - POST /forgot-password : Issues a reset token.
//   - POST /reset-password  : Resets a password with a reset token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// AccountRoutes returns the routes of the private account group.
//
// # Endpoints
//   - POST /reset-password : Resets the caller's own password.
func (handler *Handler) AccountRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/reset-password", handler.resetOwnPassword)
	return router
}

// # Request Payloads

type signupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	MobileNo string `json:"mobile_no"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

type resetOwnPasswordRequest struct {
	Password string `json:"password"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Request:
  - Body: signupRequest (FullName, Email, Password, MobileNo)

Response:
  - 201: Message: Account created (no token)
  - 400: ErrValidation: Bad input or validation failure
  - 409: ErrDuplicateEmail: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldFullName, input.FullName).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Length(FieldPassword, input.Password, PasswordMinLength, PasswordMaxLength).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes).
		Required(FieldMobileNo, input.MobileNo)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	_, err := handler.authService.Signup(request.Context(), SignupInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
		MobileNo: input.MobileNo,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{FieldMessage: MessageSignupDone})
}

/*
Login authenticates a user and issues an access token.

POST /api/v1/auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: {message, token}
  - 401: ErrInvalidCredentials: Unknown email or wrong password
  - 403: ErrForbidden: Account is inactive
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: MessageAccessGranted,
		FieldToken:   result.Token,
	})
}

/*
ForgotPassword initiates the password recovery flow.

POST /api/v1/auth/forgot-password

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Generic message, whether or not the account exists
  - 400: ErrValidation: Invalid email format
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.ForgotPassword(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload := map[string]string{FieldMessage: MessageResetIssued}
	if handler.exposeResetToken && token != "" {
		payload[FieldToken] = token
	}

	respond.OK(writer, payload)
}

/*
ResetPassword completes the password recovery flow.

POST /api/v1/auth/reset-password

Request:
  - Body: resetPasswordRequest (Email, Password, Token)

Response:
  - 200: Message: Password updated
  - 400: ErrValidation or ErrInvalidToken: Bad input, unknown or spent token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldToken, input.Token).
		Required(FieldPassword, input.Password).
		Length(FieldPassword, input.Password, PasswordMinLength, PasswordMaxLength).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.authService.ResetPassword(request.Context(), ResetInput{
		Email:    input.Email,
		Password: input.Password,
		Token:    input.Token,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MessagePasswordReset)
}

/*
ResetOwnPassword updates the authenticated caller's password.

POST /api/v1/account/reset-password

Request:
  - Body: resetOwnPasswordRequest (Password)

Response:
  - 200: Message: Password updated
  - 400: ErrValidation: Weak password
  - 401: ErrUnauthorized: Request did not pass the authorization gate
*/
func (handler *Handler) resetOwnPassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resetOwnPasswordRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password).
		Length(FieldPassword, input.Password, PasswordMinLength, PasswordMaxLength).
		MaxBytes(FieldPassword, input.Password, sec.MaxPasswordBytes)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetOwnPassword(request.Context(), userID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MessagePasswordReset)
}
