package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mhpenta/picgen"
	"github.com/openai/openai-go"
)

// APIModelDalle is the actual API name for DALL-E 3.
const APIModelDalle = "dall-e-3"

// Cost estimates per image by quality (USD).
var dalleCostPerImage = map[string]float64{
	"standard": 0.040,
	"hd":       0.080,
}

// Dalle implements picgen.Client using DALL-E 3. The API returns a
// short-lived URL; the client downloads it so the orchestrator only ever
// sees raw bytes.
type Dalle struct {
	client     *openai.Client
	httpClient *http.Client
	configured bool
}

var _ picgen.Client = (*Dalle)(nil)

// NewDalle creates a DALL-E client with the given API key. An empty key
// leaves the client constructed but unavailable.
func NewDalle(apiKey string) *Dalle {
	return &Dalle{
		client:     newSDKClient(apiKey),
		httpClient: http.DefaultClient,
		configured: apiKey != "",
	}
}

// Provider returns the canonical provider id.
func (d *Dalle) Provider() picgen.ProviderID { return picgen.ProviderDalle }

// Available reports whether an API key was configured.
func (d *Dalle) Available(ctx context.Context) bool {
	return d.configured
}

// EstimateCost returns the per-image price for the requested quality.
// Unrecognized quality values fall back to standard pricing.
func (d *Dalle) EstimateCost(params picgen.Params) float64 {
	quality := params.String("quality", "standard")
	if cost, ok := dalleCostPerImage[quality]; ok {
		return cost
	}
	return dalleCostPerImage["standard"]
}

// Generate creates one image from a text prompt.
func (d *Dalle) Generate(ctx context.Context, prompt string, params picgen.Params) (*picgen.GeneratedImage, error) {
	if !d.configured {
		return nil, errors.New("OpenAI API key not configured")
	}

	genParams := openai.ImageGenerateParams{
		Model:          APIModelDalle,
		Prompt:         prompt,
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(params.String("size", "1024x1024")),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	}
	if quality := params.String("quality", ""); quality != "" {
		genParams.Quality = openai.ImageGenerateParamsQuality(quality)
	}
	if style := params.String("style", ""); style != "" {
		genParams.Style = openai.ImageGenerateParamsStyle(style)
	}

	resp, err := d.client.Images.Generate(ctx, genParams)
	if err != nil {
		return nil, fmt.Errorf("dalle generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, errors.New("no image URL in DALL-E response")
	}

	data, mime, err := fetchImage(ctx, d.httpClient, resp.Data[0].URL)
	if err != nil {
		return nil, err
	}

	return &picgen.GeneratedImage{
		Data:          data,
		MIMEType:      mime,
		Provider:      picgen.ProviderDalle,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

// Close releases any resources held by the client.
func (d *Dalle) Close() error { return nil }
