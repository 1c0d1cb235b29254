package auth

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingTenant = errors.New("organization_id claim is missing or invalid")
	ErrMissingCaller = errors.New("user_id claim is missing or invalid")
	ErrForbidden     = errors.New("caller is not allowed to perform this operation")
)
