package validate

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidAge   = errors.New("invalid age")
	ErrInvalidFare  = errors.New("invalid fare")
)

// Error couples a sentinel kind with a caller-facing reason. errors.Is
// matches the kind; Error() returns the display-ready reason.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Reason extracts the caller-facing reason from a validation error, walking
// wrapped chains. It falls back to err.Error() for foreign errors.
func Reason(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Reason
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
