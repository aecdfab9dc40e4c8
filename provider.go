package picgen

import (
	"fmt"
	"strings"
)

// ProviderID identifies an image generation backend.
type ProviderID string

// Supported providers.
const (
	ProviderNanoBanana ProviderID = "nano-banana-pro"
	ProviderGPTImage   ProviderID = "gptimage"
	ProviderImagen     ProviderID = "imagen"
	ProviderDalle      ProviderID = "dalle"
)

// String returns the provider identifier.
func (p ProviderID) String() string { return string(p) }

// aliases maps caller-facing synonyms to canonical provider ids.
var aliases = map[string]ProviderID{
	"openai": ProviderDalle,
	"google": ProviderImagen,
}

var known = map[ProviderID]bool{
	ProviderNanoBanana: true,
	ProviderGPTImage:   true,
	ProviderImagen:     true,
	ProviderDalle:      true,
}

// ResolveProvider maps a provider name or alias to a canonical ProviderID.
// Matching is case-insensitive. Resolution is pure: the same input always
// yields the same id, and an unknown name is an UnknownProviderError.
func ResolveProvider(name string) (ProviderID, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return "", &UnknownProviderError{Name: name}
	}
	if id, ok := aliases[s]; ok {
		return id, nil
	}
	if id := ProviderID(s); known[id] {
		return id, nil
	}
	return "", &UnknownProviderError{Name: name}
}

// DefaultPriority returns the default provider fallback order.
func DefaultPriority() []ProviderID {
	return []ProviderID{ProviderNanoBanana, ProviderGPTImage, ProviderImagen, ProviderDalle}
}

// UnknownProviderError is returned when a provider name or alias cannot
// be resolved to a registered provider.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %q (valid: %s, aliases: openai, google)", e.Name, joinProviders(DefaultPriority()))
}

func joinProviders(ids []ProviderID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return strings.Join(names, ", ")
}
