package auth

import "errors"

// Authentication flow errors. Their messages are what clients see; the
// wrapped causes are for logs only.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrDuplicateUser      = errors.New("email already registered")
	ErrAuthentication     = errors.New("could not validate credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTokenIssuance      = errors.New("could not issue token")
	ErrPersistence        = errors.New("storage failure")
)

// Token codec errors.
var (
	ErrTokenInvalid = errors.New("token: invalid")
	ErrTokenConfig  = errors.New("token: invalid configuration")
)

// Password hash errors.
var (
	ErrPasswordMismatch = errors.New("phc: password mismatch")
	ErrMalformedHash    = errors.New("phc: malformed hash")
)
