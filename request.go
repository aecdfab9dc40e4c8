package picgen

// Params holds provider-specific generation parameters. Keys and accepted
// values vary per provider: quality/size for dalle and gptimage,
// aspect_ratio for imagen, aspect_ratio/resolution/thinking/search for
// nano-banana-pro. Unknown keys are ignored by providers.
type Params map[string]any

// String returns the string value for key, or def if absent or not a string.
func (p Params) String(key, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Bool returns the bool value for key, or def if absent or not a bool.
func (p Params) Bool(key string, def bool) bool {
	if p == nil {
		return def
	}
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// GenerationRequest describes a single image generation call.
type GenerationRequest struct {
	// Prompt is the text description of the image. Required.
	Prompt string

	// OutputPath is where the generated image is written. Required.
	OutputPath string

	// PreferredAPI is an optional provider id or alias to try first.
	PreferredAPI string

	// Params are provider-specific generation parameters.
	Params Params

	// ConversationID routes the request to an existing multi-turn session.
	// When set, only the session's bound provider is a candidate.
	ConversationID string
}
