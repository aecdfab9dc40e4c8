package tool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mhpenta/picgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	id        picgen.ProviderID
	available bool
	cost      float64
	failWith  error
	session   bool
}

func (s *stubClient) Provider() picgen.ProviderID          { return s.id }
func (s *stubClient) Available(ctx context.Context) bool   { return s.available }
func (s *stubClient) EstimateCost(p picgen.Params) float64 { return s.cost }
func (s *stubClient) Close() error                         { return nil }

func (s *stubClient) Generate(ctx context.Context, prompt string, p picgen.Params) (*picgen.GeneratedImage, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return &picgen.GeneratedImage{Data: []byte("img"), MIMEType: "image/png", Provider: s.id}, nil
}

type stubSessionClient struct {
	stubClient
}

func (s *stubSessionClient) StartSession(ctx context.Context, opts picgen.SessionOptions) (picgen.SessionHandle, error) {
	return "handle", nil
}

func (s *stubSessionClient) ContinueSession(ctx context.Context, handle picgen.SessionHandle, prompt string) (*picgen.GeneratedImage, error) {
	return &picgen.GeneratedImage{Data: []byte("turn"), MIMEType: "image/png", Provider: s.id}, nil
}

func (s *stubSessionClient) EndSession(handle picgen.SessionHandle) error { return nil }

func newTestTool(t *testing.T, clients ...picgen.Client) *Tool {
	t.Helper()
	if clients == nil {
		clients = []picgen.Client{
			&stubClient{id: picgen.ProviderDalle, available: true, cost: 0.04},
		}
	}
	gen, err := picgen.New(clients, picgen.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return New(gen)
}

func TestExecute_MissingOperation(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "missing 'operation'")
	assert.NotEmpty(t, result.Error["valid_operations"])
}

func TestExecute_UnknownOperation(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{"operation": "transmogrify"})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "unknown operation")
}

func TestExecute_Generate(t *testing.T) {
	tool := newTestTool(t)
	path := filepath.Join(t.TempDir(), "out.png")

	result := tool.Execute(context.Background(), map[string]any{
		"operation":   "generate",
		"prompt":      "a red circle",
		"output_path": path,
		"params":      map[string]any{"quality": "hd"},
	})

	require.True(t, result.Success, "error: %v", result.Error)
	assert.Equal(t, "dalle", result.Output["api_used"])
	assert.Equal(t, 0.04, result.Output["cost"])
	assert.Equal(t, path, result.Output["local_path"])
}

func TestExecute_GenerateMissingFields(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{"operation": "generate"})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "'prompt'")

	result = tool.Execute(context.Background(), map[string]any{
		"operation": "generate",
		"prompt":    "x",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "'output_path'")
}

func TestExecute_GenerateAllFail(t *testing.T) {
	tool := newTestTool(t, &stubClient{
		id:        picgen.ProviderDalle,
		available: true,
		failWith:  errors.New("quota exceeded"),
	})

	result := tool.Execute(context.Background(), map[string]any{
		"operation":   "generate",
		"prompt":      "x",
		"output_path": filepath.Join(t.TempDir(), "out.png"),
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "quota exceeded")
}

func TestExecute_CheckAvailability(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{
		"operation": "check_availability",
		"provider":  "openai",
	})

	require.True(t, result.Success)
	assert.Equal(t, "dalle", result.Output["provider"], "aliases resolve before reporting")
	assert.Equal(t, true, result.Output["available"])
}

func TestExecute_CostEstimate(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{
		"operation": "get_cost_estimate",
		"provider":  "dalle",
		"params":    map[string]any{"quality": "hd"},
	})

	require.True(t, result.Success)
	assert.Equal(t, 0.04, result.Output["cost_per_image"])
	assert.Equal(t, "USD", result.Output["currency"])
}

func TestExecute_CostEstimateUnknownProvider(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{
		"operation": "get_cost_estimate",
		"provider":  "midjourney",
	})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error["available_providers"])
}

func TestExecute_ConversationLifecycle(t *testing.T) {
	tool := newTestTool(t, &stubSessionClient{
		stubClient: stubClient{id: picgen.ProviderNanoBanana, available: true, cost: 0.035},
	})

	created := tool.Execute(context.Background(), map[string]any{
		"operation": "create_conversation",
		"provider":  "nano-banana-pro",
		"params":    map[string]any{"resolution": "2K"},
	})
	require.True(t, created.Success, "error: %v", created.Error)
	convID, _ := created.Output["conversation_id"].(string)
	require.NotEmpty(t, convID)

	generated := tool.Execute(context.Background(), map[string]any{
		"operation":       "generate",
		"prompt":          "make it bluer",
		"output_path":     filepath.Join(t.TempDir(), "turn.png"),
		"conversation_id": convID,
	})
	require.True(t, generated.Success, "error: %v", generated.Error)

	closed := tool.Execute(context.Background(), map[string]any{
		"operation":       "close_conversation",
		"conversation_id": convID,
	})
	require.True(t, closed.Success)

	// Closing again is a no-op.
	closed = tool.Execute(context.Background(), map[string]any{
		"operation":       "close_conversation",
		"conversation_id": convID,
	})
	assert.True(t, closed.Success)
}

func TestExecute_CreateConversationCapability(t *testing.T) {
	tool := newTestTool(t)

	result := tool.Execute(context.Background(), map[string]any{
		"operation": "create_conversation",
		"provider":  "dalle",
	})

	assert.False(t, result.Success)
	assert.Contains(t, result.Error["message"], "does not support conversations")
}
