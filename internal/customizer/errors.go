package customizer

import "errors"

// Outcome is how a user-confirmed operation ended.
type Outcome int

const (
	// OutcomeDone means the operation ran.
	OutcomeDone Outcome = iota
	// OutcomeCancelled means the user declined. It is not an error.
	OutcomeCancelled
	// OutcomeRejected means a policy stopped the operation before it was
	// offered for confirmation.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ValidationError reports malformed input for one field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
