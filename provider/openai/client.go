// Package openai provides picgen clients for OpenAI's image models:
// DALL-E 3 and GPT-Image-1 via the official Go SDK.
package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mhpenta/picgen"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func newSDKClient(apiKey string) *openai.Client {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &client
}

// fetchImage downloads a generated image from a provider URL. DALL-E
// materializes results as short-lived URLs rather than inline payloads.
func fetchImage(ctx context.Context, httpClient *http.Client, url string) ([]byte, string, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building image request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("downloading image: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading image body: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = picgen.GetMIMEType(url)
	}
	return data, mime, nil
}
