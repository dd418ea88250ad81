package core

import (
	"errors"
	"fmt"
)

// Claim-level errors. All of these are recoverable skips: one malformed
// claim never aborts a batch, it is logged and counted by the caller.
var (
	ErrMissingParameter     = errors.New("required degrees of freedom missing")
	ErrUnknownTestType      = errors.New("unknown test type")
	ErrInvalidTail          = errors.New("invalid tail specification")
	ErrUnparseableReportedP = errors.New("reported p-value is neither numeric nor ns")
	ErrNonPositiveSample    = errors.New("sample size must be positive")
	ErrInvalidOperator      = errors.New("invalid comparison operator")
	ErrMalformedClaim       = errors.New("malformed claim record")
)

// Error constructors with context
func NewMissingParameterError(testType string) error {
	return fmt.Errorf("%w for test type %s", ErrMissingParameter, testType)
}

func NewUnknownTestTypeError(testType string) error {
	return fmt.Errorf("%w: %s (use r, t, f, chi2 or z)", ErrUnknownTestType, testType)
}

func NewInvalidTailError(tail string) error {
	return fmt.Errorf("%w: %s (use one or two)", ErrInvalidTail, tail)
}

func NewMalformedClaimError(field string, reason string) error {
	return fmt.Errorf("%w: field %s: %s", ErrMalformedClaim, field, reason)
}

// IsSkip reports whether an error is one of the claim-level skip reasons.
func IsSkip(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrUnknownTestType) ||
		errors.Is(err, ErrInvalidTail) ||
		errors.Is(err, ErrUnparseableReportedP) ||
		errors.Is(err, ErrNonPositiveSample) ||
		errors.Is(err, ErrInvalidOperator) ||
		errors.Is(err, ErrMalformedClaim)
}
