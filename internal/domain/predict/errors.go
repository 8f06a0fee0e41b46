package predict

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrPrediction marks a model invocation that could not produce a
	// label: the model returned an error or a malformed result.
	ErrPrediction = errors.New("prediction failed")
)
