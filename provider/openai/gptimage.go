package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mhpenta/picgen"
	"github.com/openai/openai-go"
)

// APIModelGPTImage is the actual API name for GPT-Image-1.
const APIModelGPTImage = "gpt-image-1"

// Cost estimates per image by quality (USD).
var gptImageCostPerImage = map[string]float64{
	"low":    0.020,
	"medium": 0.040,
	"high":   0.080,
	"auto":   0.040,
}

// GPTImage implements picgen.Client using GPT-Image-1. The API always
// returns a base64 payload, decoded here into raw bytes.
type GPTImage struct {
	client     *openai.Client
	configured bool
}

var _ picgen.Client = (*GPTImage)(nil)

// NewGPTImage creates a GPT-Image-1 client with the given API key.
func NewGPTImage(apiKey string) *GPTImage {
	return &GPTImage{
		client:     newSDKClient(apiKey),
		configured: apiKey != "",
	}
}

// Provider returns the canonical provider id.
func (g *GPTImage) Provider() picgen.ProviderID { return picgen.ProviderGPTImage }

// Available reports whether an API key was configured.
func (g *GPTImage) Available(ctx context.Context) bool {
	return g.configured
}

// EstimateCost returns the per-image price for the requested quality.
// DALL-E quality names are accepted as aliases: standard maps to medium,
// hd maps to high. Unrecognized values fall back to auto pricing.
func (g *GPTImage) EstimateCost(params picgen.Params) float64 {
	quality := normalizeQuality(params.String("quality", "auto"))
	if cost, ok := gptImageCostPerImage[quality]; ok {
		return cost
	}
	return gptImageCostPerImage["auto"]
}

func normalizeQuality(quality string) string {
	switch quality {
	case "standard":
		return "medium"
	case "hd":
		return "high"
	default:
		return quality
	}
}

// Generate creates one image from a text prompt.
func (g *GPTImage) Generate(ctx context.Context, prompt string, params picgen.Params) (*picgen.GeneratedImage, error) {
	if !g.configured {
		return nil, errors.New("OpenAI API key not configured")
	}

	genParams := openai.ImageGenerateParams{
		Model:  APIModelGPTImage,
		Prompt: prompt,
		N:      openai.Int(1),
	}
	if size := params.String("size", ""); size != "" {
		genParams.Size = openai.ImageGenerateParamsSize(size)
	}
	if quality := params.String("quality", ""); quality != "" {
		genParams.Quality = openai.ImageGenerateParamsQuality(normalizeQuality(quality))
	}

	resp, err := g.client.Images.Generate(ctx, genParams)
	if err != nil {
		return nil, fmt.Errorf("gpt-image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("no image payload in GPT-Image response")
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}

	return &picgen.GeneratedImage{
		Data:          data,
		MIMEType:      "image/png",
		Provider:      picgen.ProviderGPTImage,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

// Close releases any resources held by the client.
func (g *GPTImage) Close() error { return nil }
