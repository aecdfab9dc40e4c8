package picgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ProviderID
	}{
		{"canonical dalle", "dalle", ProviderDalle},
		{"canonical imagen", "imagen", ProviderImagen},
		{"canonical gptimage", "gptimage", ProviderGPTImage},
		{"canonical nano banana", "nano-banana-pro", ProviderNanoBanana},
		{"openai alias", "openai", ProviderDalle},
		{"google alias", "google", ProviderImagen},
		{"uppercase alias", "OPENAI", ProviderDalle},
		{"mixed case canonical", "Imagen", ProviderImagen},
		{"surrounding whitespace", "  dalle  ", ProviderDalle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveProvider(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveProvider_Unknown(t *testing.T) {
	for _, input := range []string{"", "midjourney", "dall-e", "gpt"} {
		_, err := ResolveProvider(input)
		var upe *UnknownProviderError
		require.ErrorAs(t, err, &upe, "input %q", input)
	}
}

func TestResolveProvider_Idempotent(t *testing.T) {
	first, err := ResolveProvider("google")
	require.NoError(t, err)
	second, err := ResolveProvider("google")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDefaultPriority(t *testing.T) {
	assert.Equal(t,
		[]ProviderID{ProviderNanoBanana, ProviderGPTImage, ProviderImagen, ProviderDalle},
		DefaultPriority())
}
