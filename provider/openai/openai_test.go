package openai

import (
	"context"
	"testing"

	"github.com/mhpenta/picgen"
	"github.com/stretchr/testify/assert"
)

func TestDalle_EstimateCost(t *testing.T) {
	d := NewDalle("test-key")

	assert.Equal(t, 0.040, d.EstimateCost(nil))
	assert.Equal(t, 0.040, d.EstimateCost(picgen.Params{"quality": "standard"}))
	assert.Equal(t, 0.080, d.EstimateCost(picgen.Params{"quality": "hd"}))
	assert.Equal(t, 0.040, d.EstimateCost(picgen.Params{"quality": "ultra"}), "unknown quality falls back to standard")

	// Deterministic for identical input.
	p := picgen.Params{"quality": "hd"}
	assert.Equal(t, d.EstimateCost(p), d.EstimateCost(p))
}

func TestDalle_Availability(t *testing.T) {
	ctx := context.Background()

	assert.True(t, NewDalle("test-key").Available(ctx))
	assert.False(t, NewDalle("").Available(ctx))
}

func TestDalle_GenerateNotConfigured(t *testing.T) {
	d := NewDalle("")

	_, err := d.Generate(context.Background(), "test", nil)
	assert.ErrorContains(t, err, "not configured")
}

func TestGPTImage_EstimateCost(t *testing.T) {
	g := NewGPTImage("test-key")

	assert.Equal(t, 0.040, g.EstimateCost(nil))
	assert.Equal(t, 0.020, g.EstimateCost(picgen.Params{"quality": "low"}))
	assert.Equal(t, 0.040, g.EstimateCost(picgen.Params{"quality": "medium"}))
	assert.Equal(t, 0.080, g.EstimateCost(picgen.Params{"quality": "high"}))
	assert.Equal(t, 0.040, g.EstimateCost(picgen.Params{"quality": "auto"}))
}

func TestGPTImage_QualityAliases(t *testing.T) {
	g := NewGPTImage("test-key")

	// DALL-E quality names map onto gpt-image tiers.
	assert.Equal(t, 0.040, g.EstimateCost(picgen.Params{"quality": "standard"}))
	assert.Equal(t, 0.080, g.EstimateCost(picgen.Params{"quality": "hd"}))
}

func TestGPTImage_GenerateNotConfigured(t *testing.T) {
	g := NewGPTImage("")

	_, err := g.Generate(context.Background(), "test", nil)
	assert.ErrorContains(t, err, "not configured")
}

func TestProviderIDs(t *testing.T) {
	assert.Equal(t, picgen.ProviderDalle, NewDalle("k").Provider())
	assert.Equal(t, picgen.ProviderGPTImage, NewGPTImage("k").Provider())
}
