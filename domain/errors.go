package domain

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotInitialized = "NOT_INITIALIZED"
	ErrCodeNotConnected   = "NOT_CONNECTED"
	ErrCodeConfigMissing  = "CONFIG_MISSING"
	ErrCodeConfigCorrupt  = "CONFIG_CORRUPT"
	ErrCodeIOFailure      = "IO_FAILURE"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeOutputError    = "OUTPUT_ERROR"
)

// Sentinel errors, matched with errors.Is against any DomainError of the
// same code.
var (
	ErrNotInitialized = errors.New("project not initialized. Run 'codeguard init' first")
	ErrNotConnected   = errors.New("project not connected. Run 'codeguard connect' first")
	ErrConfigMissing  = errors.New("configuration file not found")
	ErrConfigCorrupt  = errors.New("configuration file is corrupt")
	ErrIOFailure      = errors.New("I/O failure")
)

var sentinelByCode = map[string]error{
	ErrCodeNotInitialized: ErrNotInitialized,
	ErrCodeNotConnected:   ErrNotConnected,
	ErrCodeConfigMissing:  ErrConfigMissing,
	ErrCodeConfigCorrupt:  ErrConfigCorrupt,
	ErrCodeIOFailure:      ErrIOFailure,
}

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel error belonging to the same code
func (e *DomainError) Is(target error) bool {
	if s, ok := sentinelByCode[e.Code]; ok && s == target {
		return true
	}
	if t, ok := target.(*DomainError); ok {
		return t.Code == e.Code
	}
	return false
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

// NewNotInitializedError creates an error for operations that need init first
func NewNotInitializedError() error {
	return NewDomainError(ErrCodeNotInitialized, ErrNotInitialized.Error(), nil)
}

// NewNotConnectedError creates an error for operations that need connect first
func NewNotConnectedError() error {
	return NewDomainError(ErrCodeNotConnected, ErrNotConnected.Error(), nil)
}

// NewNotConnectedUninitializedError reports a gated operation in a project
// that has no configuration yet
func NewNotConnectedUninitializedError() error {
	return NewDomainError(ErrCodeNotConnected,
		"project not connected. Run 'codeguard init' and 'codeguard connect' first", nil)
}

// NewConfigMissingError creates an error for an absent configuration file
func NewConfigMissingError(path string) error {
	return NewDomainError(ErrCodeConfigMissing, fmt.Sprintf("configuration file not found: %s", path), nil)
}

// NewConfigCorruptError creates an error for an unreadable configuration file
func NewConfigCorruptError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigCorrupt, message, cause)
}

// NewIOError creates an error for a failed write
func NewIOError(message string, cause error) error {
	return NewDomainError(ErrCodeIOFailure, message, cause)
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// ErrorCode extracts the code of a DomainError anywhere in the chain
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
