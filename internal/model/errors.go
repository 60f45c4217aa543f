package model

import "errors"

var (
	// Authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors. Signature mismatch, malformed payload and elapsed expiry
	// all collapse into ErrInvalidToken on purpose.
	ErrInvalidToken = errors.New("invalid token")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Claim/policy errors
	ErrPolicyNotFound = errors.New("policy not found")
	ErrClaimNotFound  = errors.New("claim not found")

	// Upstream AI collaborator failures; never conflated with auth or
	// claim errors.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
