package domain

import "errors"

// Sentinel errors shared by repositories, services and controllers.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnsupportedImage   = errors.New("only image files are allowed")
	ErrImageTooLarge      = errors.New("image exceeds maximum upload size")
	ErrImageRequired      = errors.New("image is required")
)