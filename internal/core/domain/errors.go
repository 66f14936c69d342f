package domain

import "errors"

var (
	ErrAccountExists         = errors.New("user already exists")
	ErrAccountNotFound       = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUnauthenticated       = errors.New("not authorized")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidRole           = errors.New("invalid role")
	ErrProtectedAccount      = errors.New("cannot delete a SuperAdmin")
	ErrResetInvalidOrExpired = errors.New("token is invalid or has expired")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrDeliveryFailure       = errors.New("error sending reset email")
)

// ErrInvalidToken is returned by token validation for every failure cause.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidInput marks requests missing required fields.
var ErrInvalidInput = errors.New("invalid input")
