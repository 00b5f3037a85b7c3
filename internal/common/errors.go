// Package common defines sentinel errors shared across the storage, API and
// bot layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound covers both entities that are absent and entities hidden
	// by soft-delete visibility rules.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor is authenticated but its board
	// role does not allow the operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthorized means no valid session token was presented.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation means bad input shape or value.
	ErrValidation = errors.New("validation error")
)
