package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the actor's role does not allow the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when an assignment is not in the state the
// operation requires, including when a concurrent writer changed it first.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrCapacityExceeded is returned when the agent already carries the maximum
// number of concurrent deliveries.
var ErrCapacityExceeded = errors.New("agent capacity exceeded")

// ErrNoCandidates means no eligible agent passed the filters and the capacity gate.
var ErrNoCandidates = errors.New("no candidate agents")

// ErrAttemptsExhausted means the reassignment budget of an assignment is spent.
var ErrAttemptsExhausted = errors.New("reassignment attempts exhausted")

// ErrDuplicatePayout is returned when an agent payout already exists for the assignment.
var ErrDuplicatePayout = errors.New("payout already recorded")

// ErrInsufficientFunds is returned when a wallet cannot cover a withdrawal.
var ErrInsufficientFunds = errors.New("insufficient funds")
