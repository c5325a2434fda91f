package telly

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrModuleNotFound indicates no component factory is registered under the
	// requested module name.
	ErrModuleNotFound = errors.New("module not found")

	// ErrApplicationDestroyed indicates the owning application was destroyed
	// while an operation was in flight. Pending work is dropped.
	ErrApplicationDestroyed = errors.New("application destroyed")

	// ErrNoApplication indicates a widget is not attached to an application.
	ErrNoApplication = errors.New("widget is not attached to an application")

	// ErrUnsupported indicates the device backend cannot perform an operation
	// (for example media playback on a backend without audio).
	ErrUnsupported = errors.New("operation not supported by device")

	// ErrNoFont indicates a pixel backend was started without a font path.
	ErrNoFont = errors.New("no font configured")
)

// LoadError is returned when a component module could not be resolved.
type LoadError struct {
	Module string // Module name that was requested
	Err    error  // Underlying error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telly: load %q: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("telly: load %q", e.Module)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new module load error.
func NewLoadError(module string, err error) *LoadError {
	return &LoadError{Module: module, Err: err}
}

// IsLoadError checks if an error is a module load error.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}

// InfrastructureError represents a toolkit-level error that indicates
// something is wrong with the device backend itself (window creation failed,
// font missing, config unreadable, etc.). These errors are typically fatal.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "create_window", "load_config")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("telly: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("telly: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsModuleNotFound checks if an error indicates an unknown module.
func IsModuleNotFound(err error) bool {
	return errors.Is(err, ErrModuleNotFound)
}
