package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrPendingApproval    = errors.New("account pending admin approval")
	ErrAccountRejected    = errors.New("account rejected")
	ErrTooManyAttempts    = errors.New("too many login attempts, please try again later")
	ErrTokenInvalid       = errors.New("invalid session token")
)
