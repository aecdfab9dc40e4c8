package picgen

// ImageResult is the outcome of a single Generate call. Exactly one is
// produced per call and it is immutable once returned: either Success is
// true, LocalPath is set and Error is empty, or Success is false, Error is
// non-empty and LocalPath is empty.
type ImageResult struct {
	// Success reports whether any provider produced an image.
	Success bool

	// APIUsed is the provider that produced the image. On failure it names
	// the last provider actually attempted, or is empty when none was.
	APIUsed ProviderID

	// Cost is the estimated USD cost of the generation. Zero on failure.
	Cost float64

	// LocalPath is the file the image was written to. Set iff Success.
	LocalPath string

	// Error aggregates the per-provider failure reasons, in the order the
	// providers were attempted. Non-empty iff not Success.
	Error string
}

// GeneratedImage is the internal provider output before it is persisted.
// Providers materialize their wire format (remote URL, inline binary,
// base64 payload) into raw bytes; the orchestrator only sees this type.
type GeneratedImage struct {
	// Data contains the raw image bytes.
	Data []byte

	// MIMEType of the generated image.
	MIMEType string

	// Provider that generated the image.
	Provider ProviderID

	// RevisedPrompt is the prompt after any model-side rewriting.
	RevisedPrompt string
}
