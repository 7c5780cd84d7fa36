package params

import "time"

const (
	ServerBodyLimit    = 1048576
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second
)

const (
	// SessionTokenMaxAge is the signature validity window of a session token.
	// There is no refresh or server-side revocation, an expired token requires
	// a fresh login.
	SessionTokenMaxAge = 30 * 24 * time.Hour

	// VerificationTokenMaxAge is how long an email verification token stays
	// redeemable after it is issued.
	VerificationTokenMaxAge = 24 * time.Hour

	LoginMaxFailAttempts = 10
	LoginLockDuration    = 24 * time.Hour
)
