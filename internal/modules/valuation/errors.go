package valuation

import "errors"

// Validation error codes. These are stable identifiers surfaced through the
// API so clients can react to specific rejection reasons.
const (
	CodeInvalidHorizon = "invalid_horizon"
	CodeWaccNotAboveTG = "wacc_not_greater_than_terminal_growth"
	CodeNegativeRate   = "negative_rate"
)

// ValidationError reports an assumption set rejected before any simulation
// work begins. A validation failure never produces a partial result.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
