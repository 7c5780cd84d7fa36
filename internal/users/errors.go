package users

import (
	"errors"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailRegistered          = errors.New("email already registered")
	ErrEmailAlreadyVerified     = errors.New("email already verified")
	ErrUserNotPending           = errors.New("user status already finalized")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrVerificationTokenExpired = errors.New("verification token expired")
)
