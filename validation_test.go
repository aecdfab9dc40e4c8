package picgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePrompt(t *testing.T) {
	assert.NoError(t, ValidatePrompt("a red circle"))
	assert.ErrorIs(t, ValidatePrompt(""), ErrEmptyPrompt)
	assert.ErrorIs(t, ValidatePrompt("   \t"), ErrEmptyPrompt)
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("output/image.png"))
	assert.ErrorIs(t, ValidateOutputPath(""), ErrEmptyOutputPath)
	assert.ErrorIs(t, ValidateOutputPath(t.TempDir()), ErrOutputIsDirectory)
}

func TestValidateRequest_ResolvesPreferred(t *testing.T) {
	id, err := validateRequest(&GenerationRequest{
		Prompt:       "test",
		OutputPath:   "out.png",
		PreferredAPI: "google",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderImagen, id)

	id, err = validateRequest(&GenerationRequest{Prompt: "test", OutputPath: "out.png"})
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestParams_Accessors(t *testing.T) {
	p := Params{"quality": "hd", "thinking": true, "count": 3}

	assert.Equal(t, "hd", p.String("quality", "standard"))
	assert.Equal(t, "standard", p.String("missing", "standard"))
	assert.Equal(t, "1K", p.String("count", "1K"), "non-string values fall back to default")

	assert.True(t, p.Bool("thinking", false))
	assert.False(t, p.Bool("missing", false))
	assert.True(t, Params(nil).Bool("anything", true))
	assert.Equal(t, "x", Params(nil).String("anything", "x"))
}
