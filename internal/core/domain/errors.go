package domain

import "errors"

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrAccessDenied means the resource lives outside the caller's organization scope.
	ErrAccessDenied = errors.New("access denied")
	// ErrForbidden means the caller is in scope but its role or ownership rules out the action.
	ErrForbidden = errors.New("forbidden")

	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvariantViolation reports a bucket whose orders were already corrupt before a move.
	ErrInvariantViolation = errors.New("order invariant violation")
)
