package pgpmime

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidArgument is returned when a required argument is nil, empty,
	// or outside the accepted set.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKeyNotFound is returned when an address resolves to no key with the
	// required capability.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotSupported is returned when a legacy or broken algorithm is
	// selected. Disallowed algorithms are rejected, never silently replaced.
	ErrNotSupported = errors.New("algorithm not supported")

	// ErrUnknownAlgorithm is returned when an engine-native algorithm tag is
	// outside the known set.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrMalformedStructure is returned when a multipart structure has the
	// wrong shape or is missing a required parameter.
	ErrMalformedStructure = errors.New("malformed multipart structure")

	// ErrNoDefaultContext is returned when a default crypto context is
	// required but none has been registered.
	ErrNoDefaultContext = errors.New("no default crypto context registered")

	// ErrMissingBody is returned when a message-level operation finds no
	// body to sign or encrypt.
	ErrMissingBody = errors.New("message has no body")

	// ErrMissingSender is returned when a message-level sign operation
	// cannot determine the sender.
	ErrMissingSender = errors.New("message has no determinable sender")

	// ErrMissingRecipients is returned when a message-level encrypt
	// operation cannot determine any recipient.
	ErrMissingRecipients = errors.New("message has no determinable recipients")
)

// PGPMimeError is implemented by all errors produced by this package.
type PGPMimeError interface {
	error
	PGPMimeError() // marker method
}

// ArgumentError reports a usage error: a nil required argument, an empty
// required collection, or a value outside the accepted subset. The Name
// field identifies the offending argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("argument %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("argument %q is invalid", e.Name)
}

// Is implements errors.Is for sentinel error matching.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// PGPMimeError implements the PGPMimeError interface.
func (e *ArgumentError) PGPMimeError() {}

// KeyNotFoundError reports a resolution failure, carrying the identity that
// could not be resolved.
type KeyNotFoundError struct {
	Address string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no key found for %q", e.Address)
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// PGPMimeError implements the PGPMimeError interface.
func (e *KeyNotFoundError) PGPMimeError() {}

// NotSupportedError reports selection of an algorithm that is deliberately
// excluded from use.
type NotSupportedError struct {
	Algorithm string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Algorithm)
}

// Is implements errors.Is for sentinel error matching.
func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// PGPMimeError implements the PGPMimeError interface.
func (e *NotSupportedError) PGPMimeError() {}

// FormatError reports a protocol violation: a multipart structure with the
// wrong child count, a missing protocol or micalg parameter, or signature
// or ciphertext bytes that cannot be parsed.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed structure: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed structure: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrMalformedStructure
}

// PGPMimeError implements the PGPMimeError interface.
func (e *FormatError) PGPMimeError() {}

// nilArgument builds the usage error for a nil required argument.
func nilArgument(name string) error {
	return &ArgumentError{Name: name, Reason: "must not be nil"}
}

// emptyArgument builds the usage error for an empty required collection.
func emptyArgument(name string) error {
	return &ArgumentError{Name: name, Reason: "must not be empty"}
}
