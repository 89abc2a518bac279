package models

import "errors"

// Domain specific errors for authentication, authorization and page loads.
var (
	ErrNoRole            = errors.New("no role provided to layout")
	ErrMalformedToken    = errors.New("malformed access token")
	ErrTokenExpired      = errors.New("access token expired")
	ErrRoleMismatch      = errors.New("token role does not match route role")
	ErrUnauthenticated   = errors.New("authentication required")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidID         = errors.New("invalid identifier")
	ErrSessionIncomplete = errors.New("session requires both token and role")
)
