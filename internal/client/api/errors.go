package api

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrEmailAlreadyTaken  = errors.New("email already taken")
	ErrValidation         = errors.New("validation error")
	ErrServer             = errors.New("server error")
)
