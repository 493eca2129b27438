package apperr

import (
	"errors"
	"fmt"
)

// User-visible request errors, mapped to 400-class responses.
var (
	ErrNoInput           = errors.New("no input provided")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrMissingDocument   = errors.New("restrict mode requires a document")
)

// CapabilityError wraps a failure from an external capability call
// (chat completion, transcription, synthesis, image generation,
// extraction). Capability failures are never retried.
type CapabilityError struct {
	Capability string
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Capability, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// Capability wraps err as a CapabilityError named for the capability,
// preserving nil.
func Capability(name string, err error) error {
	if err == nil {
		return nil
	}
	return &CapabilityError{Capability: name, Err: err}
}

// StorageError marks a mood store medium that could not be read or written.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("mood storage failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
