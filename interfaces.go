package picgen

import "context"

// Client is the core interface for image generation providers.
// Implement this interface to add support for a new backend.
type Client interface {
	// Provider returns the canonical id of the backend this client serves.
	Provider() ProviderID

	// Available reports whether the provider is configured and reachable.
	// It never returns an error: any internal failure (missing credential,
	// unreachable endpoint) is reported as false.
	Available(ctx context.Context) bool

	// EstimateCost returns the fixed USD price for one generation with the
	// given parameters. Pure and deterministic, no network access.
	EstimateCost(params Params) float64

	// Generate creates one image from a text prompt.
	Generate(ctx context.Context, prompt string, params Params) (*GeneratedImage, error)

	// Close releases any resources held by the client.
	Close() error
}

// SessionClient extends Client with provider-side multi-turn editing
// sessions. Only providers with native conversational models implement it.
type SessionClient interface {
	Client

	// StartSession opens a provider-side session for iterative editing.
	StartSession(ctx context.Context, opts SessionOptions) (SessionHandle, error)

	// ContinueSession sends the next prompt to an open session.
	ContinueSession(ctx context.Context, handle SessionHandle, prompt string) (*GeneratedImage, error)

	// EndSession releases the provider-side session. Best effort.
	EndSession(handle SessionHandle) error
}

// SessionHandle is an opaque provider-side session reference. It is owned
// exclusively by the conversation store entry it was created for.
type SessionHandle interface{}

// SessionOptions is the option snapshot fixed at session creation.
type SessionOptions struct {
	// Thinking enables the model's reasoning mode.
	Thinking bool

	// Search enables search grounding for factual prompts.
	Search bool

	// AspectRatio of generated images (e.g., "16:9").
	AspectRatio string

	// Resolution of generated images (e.g., "1K", "2K", "4K").
	Resolution string
}
