package picgen

import (
	"errors"
	"fmt"
)

// Validation errors. All are configuration errors: they fail a call
// synchronously, before any provider is contacted.
var (
	ErrEmptyPrompt       = errors.New("prompt cannot be empty")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")
	ErrOutputIsDirectory = errors.New("output path is a directory")
	ErrNoClients         = errors.New("no provider clients registered")
)

// ConfigurationError wraps a synchronous request validation failure.
// It is never retried and never triggers provider fallback.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// ProviderFailure is a terminal error from one provider attempt. It
// triggers fallback to the next candidate; if every candidate fails, the
// reasons are aggregated into the returned ImageResult.
type ProviderFailure struct {
	Provider ProviderID
	Reason   string
	Err      error
}

func (e *ProviderFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
}

func (e *ProviderFailure) Unwrap() error { return e.Err }

// CapabilityError is returned when multi-turn behavior is requested from a
// provider that only supports single-shot generation.
type CapabilityError struct {
	Provider ProviderID
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("provider %s does not support conversations", e.Provider)
}

// IsCapabilityError checks if an error is a CapabilityError.
func IsCapabilityError(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

// ConversationNotFoundError is returned when a request names a
// conversation id with no live session.
type ConversationNotFoundError struct {
	ID string
}

func (e *ConversationNotFoundError) Error() string {
	return fmt.Sprintf("conversation not found: %s", e.ID)
}

// ConversationMismatchError is returned when a request prefers a provider
// other than the one its conversation is bound to.
type ConversationMismatchError struct {
	ID        string
	Bound     ProviderID
	Requested ProviderID
}

func (e *ConversationMismatchError) Error() string {
	return fmt.Sprintf("conversation %s is bound to %s, cannot use %s", e.ID, e.Bound, e.Requested)
}

// ConversationBusyError is returned when a generate call references a
// conversation that already has a call in flight. Turn order is strict:
// the caller retries rather than interleaving.
type ConversationBusyError struct {
	ID string
}

func (e *ConversationBusyError) Error() string {
	return fmt.Sprintf("conversation %s has a generation in flight", e.ID)
}
