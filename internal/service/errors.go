package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than
	// the one making the request. API layer maps this to HTTP 403.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidDateRange indicates a range query where end precedes start.
	// API layer maps this to HTTP 400.
	ErrInvalidDateRange = errors.New("end date precedes start date")

	// ErrInvalidCycles indicates a session start with a non-positive cycle
	// count. API layer maps this to HTTP 400.
	ErrInvalidCycles = errors.New("cycle count must be at least 1")
)
