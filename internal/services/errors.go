package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes; anything else is treated as an internal error.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not authorized to modify this resource")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotYetLiked        = errors.New("post has not yet been liked")
	ErrConflict           = errors.New("concurrent update conflict")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
