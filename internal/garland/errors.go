package garland

import (
	"errors"
	"fmt"
)

// Domain errors for garland setup and terminal handling.
var (
	// ErrConfiguration indicates a bulb count or palette that cannot produce a garland.
	ErrConfiguration = errors.New("garland: invalid configuration")

	// ErrTerminalIO indicates the terminal could not be configured, read or written.
	ErrTerminalIO = errors.New("garland: terminal i/o failure")
)

// ConfigError describes which setting was rejected.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("garland: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// TerminalError wraps a terminal failure with the operation that hit it.
type TerminalError struct {
	Op  string
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("garland: terminal %s: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

func (e *TerminalError) Is(target error) bool {
	return target == ErrTerminalIO
}
