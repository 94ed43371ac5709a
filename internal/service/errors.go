package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBadGoalConfig is returned when the configured weekly value
	// target cannot be parsed into a decimal
	ErrBadGoalConfig = errors.New("invalid weekly value target configuration")
)
