package model

import "errors"

// Common errors for master control-plane operations.
var (
	// Request errors
	ErrDuplicateRequest = errors.New("request already exists")
	ErrRequestNotFound  = errors.New("request not found")

	// Reassignment errors
	ErrNotReassignable       = errors.New("request is not in a reassignable state")
	ErrWorkerNotRegistered   = errors.New("worker is not registered")
	ErrWorkerCannotReachPath = errors.New("worker cannot reach the source path")

	// Scheduler errors
	ErrUnknownPolicy = errors.New("unknown scheduling policy")
)
