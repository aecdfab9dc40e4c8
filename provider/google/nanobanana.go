package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhpenta/picgen"
	"google.golang.org/genai"
)

// APIModelNanoBanana is the actual API name for Nano Banana Pro
// (Gemini 3 Pro Image).
const APIModelNanoBanana = "gemini-3-pro-image-preview"

// Cost estimates per image by resolution (USD).
var nanoBananaCostPerImage = map[string]float64{
	"1K": 0.035,
	"2K": 0.050,
	"4K": 0.080,
}

// NanoBanana implements picgen.SessionClient using Nano Banana Pro.
// It is the only provider in the default set supporting multi-turn
// conversational editing, thinking mode, and search grounding.
type NanoBanana struct {
	client     *genai.Client
	configured bool
}

var (
	_ picgen.Client        = (*NanoBanana)(nil)
	_ picgen.SessionClient = (*NanoBanana)(nil)
)

// NewNanoBanana creates a Nano Banana Pro client with the given API key.
func NewNanoBanana(ctx context.Context, apiKey string) (*NanoBanana, error) {
	if apiKey == "" {
		return &NanoBanana{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &NanoBanana{client: client, configured: true}, nil
}

// Provider returns the canonical provider id.
func (c *NanoBanana) Provider() picgen.ProviderID { return picgen.ProviderNanoBanana }

// Available reports whether an API key was configured.
func (c *NanoBanana) Available(ctx context.Context) bool {
	return c.configured && c.client != nil
}

// EstimateCost returns the per-image price for the requested resolution.
// Unrecognized resolutions fall back to 1K pricing.
func (c *NanoBanana) EstimateCost(params picgen.Params) float64 {
	resolution := params.String("resolution", "1K")
	if cost, ok := nanoBananaCostPerImage[resolution]; ok {
		return cost
	}
	return nanoBananaCostPerImage["1K"]
}

// Generate creates one image from a text prompt, single-shot.
func (c *NanoBanana) Generate(ctx context.Context, prompt string, params picgen.Params) (*picgen.GeneratedImage, error) {
	if !c.Available(ctx) {
		return nil, errors.New("Google API key not configured")
	}

	config := buildGenerateContentConfig(picgen.SessionOptions{
		Thinking:    params.Bool("thinking", true),
		Search:      params.Bool("search", false),
		AspectRatio: params.String("aspect_ratio", ""),
		Resolution:  params.String("resolution", ""),
	})

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := c.client.Models.GenerateContent(ctx, APIModelNanoBanana, contents, config)
	if err != nil {
		return nil, fmt.Errorf("nano-banana-pro generation failed: %w", err)
	}
	return extractImage(resp)
}

// StartSession opens a provider-side chat for iterative editing. The chat
// holds the accumulated turn history on the provider side.
func (c *NanoBanana) StartSession(ctx context.Context, opts picgen.SessionOptions) (picgen.SessionHandle, error) {
	if !c.Available(ctx) {
		return nil, errors.New("Google API key not configured")
	}

	chat, err := c.client.Chats.Create(ctx, APIModelNanoBanana, buildGenerateContentConfig(opts), nil)
	if err != nil {
		return nil, fmt.Errorf("creating chat session: %w", err)
	}
	return chat, nil
}

// ContinueSession sends the next edit instruction to an open chat.
func (c *NanoBanana) ContinueSession(ctx context.Context, handle picgen.SessionHandle, prompt string) (*picgen.GeneratedImage, error) {
	chat, ok := handle.(*genai.Chat)
	if !ok {
		return nil, errors.New("invalid session handle")
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		return nil, fmt.Errorf("conversation send failed: %w", err)
	}
	return extractImage(resp)
}

// EndSession releases the chat. The SDK keeps no server-side resources for
// chats, so dropping the handle is sufficient.
func (c *NanoBanana) EndSession(handle picgen.SessionHandle) error {
	return nil
}

// Close releases any resources held by the client.
func (c *NanoBanana) Close() error { return nil }

// buildGenerateContentConfig maps session options to Gemini's config.
func buildGenerateContentConfig(opts picgen.SessionOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	imageConfig := &genai.ImageConfig{}
	if opts.AspectRatio != "" {
		imageConfig.AspectRatio = opts.AspectRatio
	}
	if opts.Resolution != "" {
		imageConfig.ImageSize = opts.Resolution
	}
	config.ImageConfig = imageConfig

	if opts.Thinking {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
		}
	}
	if opts.Search {
		config.Tools = []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		}
	}

	return config
}

// extractImage pulls the first inline image out of a Gemini response.
func extractImage(resp *genai.GenerateContentResponse) (*picgen.GeneratedImage, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("empty response from model")
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Thought {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &picgen.GeneratedImage{
					Data:     part.InlineData.Data,
					MIMEType: mime,
					Provider: picgen.ProviderNanoBanana,
				}, nil
			}
		}
	}

	return nil, errors.New("no image data in nano-banana-pro response")
}
