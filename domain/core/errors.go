package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Contract violations raised before any sampling happens
	ErrInvalidDimension = errors.New("bound vector length does not match dimension")
	ErrInvalidDomain    = errors.New("lower bound exceeds upper bound")
	ErrBudgetTooSmall   = errors.New("sample budget too small for a refinement pass")

	// Aggregation errors
	ErrNoWorkers     = errors.New("no workers available")
	ErrWorkerFailure = errors.New("worker failed")
)

// Error constructors with context
func NewInvalidDimensionError(want, got int) error {
	return fmt.Errorf("%w: declared dim %d, got %d bound components", ErrInvalidDimension, want, got)
}

func NewInvalidDomainError(dim int, lower, upper float64) error {
	return fmt.Errorf("%w: dimension %d has lower %g > upper %g", ErrInvalidDomain, dim, lower, upper)
}

func NewBudgetError(calls, min int) error {
	return fmt.Errorf("%w: %d calls, need at least %d", ErrBudgetTooSmall, calls, min)
}

func NewWorkerError(worker int, err error) error {
	return fmt.Errorf("%w: worker %d: %v", ErrWorkerFailure, worker, err)
}

// Error checking helpers
func IsContractError(err error) bool {
	return errors.Is(err, ErrInvalidDimension) ||
		errors.Is(err, ErrInvalidDomain) ||
		errors.Is(err, ErrBudgetTooSmall)
}

func IsWorkerError(err error) bool {
	return errors.Is(err, ErrWorkerFailure)
}
