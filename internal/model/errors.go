package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is; the typed errors below carry details.
var (
	// ErrInvalidEnumValue indicates a raw string outside a closed enumeration.
	ErrInvalidEnumValue = errors.New("invalid enum value")

	// ErrValidation indicates a value object built with a wrong field or broken invariant.
	ErrValidation = errors.New("validation failed")

	// ErrUnregisteredSourceType indicates no strategy is bound for a source kind.
	ErrUnregisteredSourceType = errors.New("unregistered source type")

	// ErrFileNotFound indicates the resolved path does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// InvalidEnumError reports a literal that is not part of an enumeration.
type InvalidEnumError struct {
	Enum  string // Enumeration name (e.g., "source_kind")
	Value string // Offending raw value
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Enum, e.Value)
}

// Is reports whether target is ErrInvalidEnumValue.
func (e *InvalidEnumError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

// ValidationError reports a field that fails construction-time validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UnregisteredSourceError reports a source kind missing from a strategy table.
type UnregisteredSourceError struct {
	Kind      SourceKind
	Component string // Table that was consulted (e.g., "parse spec registry")
}

func (e *UnregisteredSourceError) Error() string {
	return fmt.Sprintf("%s: unregistered source type %q", e.Component, string(e.Kind))
}

// Is reports whether target is ErrUnregisteredSourceType.
func (e *UnregisteredSourceError) Is(target error) bool {
	return target == ErrUnregisteredSourceType
}

// FileNotFoundError reports a resolved path that does not exist.
// Retryable after the file is fetched and the owning cache is cleared.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// Is reports whether target is ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// IsRetryable returns true if the error can succeed after external corrective action.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}
