package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for problem setup and integration.
var (
	// ErrInvalidConfiguration indicates malformed physical or numeric parameters.
	ErrInvalidConfiguration = errors.New("dynamo: invalid configuration")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// ConfigError wraps ErrInvalidConfiguration with the offending field.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidConfiguration, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
