package scrollbar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDirection is returned for a direction other than
	// "vertical" or "horizontal".
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrNegativeDuration is returned for a negative fade duration.
	ErrNegativeDuration = errors.New("negative duration")

	// ErrNegativeLength is returned for a negative minimum thumb length.
	ErrNegativeLength = errors.New("negative length")

	// ErrMissing is returned when a required collaborator is nil.
	ErrMissing = errors.New("required")
)

// ConfigError describes a construction input that New rejected. It is
// fatal: New attaches no listeners when it returns one.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("scrollbar: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("scrollbar: %s %q: %v", e.Field, fmt.Sprint(e.Value), e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
