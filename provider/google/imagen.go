// Package google provides picgen clients for Google's image models via the
// official genai Go SDK: Imagen for single-shot generation and Nano Banana
// Pro (Gemini 3 Pro Image) for conversational editing.
package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhpenta/picgen"
	"google.golang.org/genai"
)

// APIModelImagen is the actual API name for Imagen 4.
const APIModelImagen = "imagen-4.0-generate-001"

// imagenCostPerImage is the flat per-image price (USD).
const imagenCostPerImage = 0.040

// Imagen implements picgen.Client using Google's Imagen API. Results are
// returned as inline bytes.
type Imagen struct {
	client     *genai.Client
	configured bool
}

var _ picgen.Client = (*Imagen)(nil)

// NewImagen creates an Imagen client with the given API key. An empty key
// leaves the client constructed but unavailable.
func NewImagen(ctx context.Context, apiKey string) (*Imagen, error) {
	if apiKey == "" {
		return &Imagen{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Imagen{client: client, configured: true}, nil
}

// Provider returns the canonical provider id.
func (c *Imagen) Provider() picgen.ProviderID { return picgen.ProviderImagen }

// Available reports whether an API key was configured.
func (c *Imagen) Available(ctx context.Context) bool {
	return c.configured && c.client != nil
}

// EstimateCost returns the flat per-image price. Imagen pricing does not
// vary with parameters.
func (c *Imagen) EstimateCost(params picgen.Params) float64 {
	return imagenCostPerImage
}

// Generate creates one image from a text prompt.
func (c *Imagen) Generate(ctx context.Context, prompt string, params picgen.Params) (*picgen.GeneratedImage, error) {
	if !c.Available(ctx) {
		return nil, errors.New("Google API key not configured")
	}

	config := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	}
	if ar := params.String("aspect_ratio", ""); ar != "" {
		config.AspectRatio = ar
	}

	resp, err := c.client.Models.GenerateImages(ctx, APIModelImagen, prompt, config)
	if err != nil {
		return nil, fmt.Errorf("imagen generation failed: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil ||
		len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, errors.New("no image data in Imagen response")
	}

	img := resp.GeneratedImages[0].Image
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}

	return &picgen.GeneratedImage{
		Data:     img.ImageBytes,
		MIMEType: mime,
		Provider: picgen.ProviderImagen,
	}, nil
}

// Close releases any resources held by the client.
func (c *Imagen) Close() error { return nil }
