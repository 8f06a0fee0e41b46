package artifact

import (
	"errors"
	"fmt"
)

// Sentinel kinds for artifact loading errors. Both are fatal to startup.
var (
	// ErrUnavailable marks an artifact file that cannot be read at all.
	ErrUnavailable = errors.New("model unavailable")
	// ErrCorrupt marks an artifact that was read but cannot be turned
	// into a usable model.
	ErrCorrupt = errors.New("model corrupt")
)

func wrapUnavailable(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
}

func wrapCorrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
