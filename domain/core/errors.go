package core

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrMalformedInput   = errors.New("input does not match its declared layout")
	ErrUnknownMethod    = errors.New("unknown method")

	// Numerical errors
	ErrDegenerateStatistic = errors.New("degenerate statistic")
	ErrNonConvergence      = errors.New("iteration did not converge")

	// Lifecycle errors
	ErrNotFitted = errors.New("method has not been calculated")
)
