// Package tool exposes the picgen orchestrator through a flat,
// string-keyed operation protocol, for callers that dispatch by operation
// name rather than linking against the library API directly.
package tool

import (
	"context"
	"fmt"

	"github.com/mhpenta/picgen"
)

// Result is the adapter envelope around one operation outcome.
type Result struct {
	Success bool           `json:"success"`
	Output  map[string]any `json:"output,omitempty"`
	Error   map[string]any `json:"error,omitempty"`
}

var validOperations = []string{
	"generate",
	"check_availability",
	"get_cost_estimate",
	"create_conversation",
	"close_conversation",
}

// Tool wraps a Generator behind the operation protocol. The generator can
// still be used directly as a library; the tool adds no behavior of its
// own beyond parameter translation.
type Tool struct {
	gen *picgen.Generator
}

// New creates a tool wrapper around an existing generator.
func New(gen *picgen.Generator) *Tool {
	return &Tool{gen: gen}
}

// Name returns the tool name for invocation.
func (t *Tool) Name() string { return "image-generation" }

// Description returns a human-readable tool description.
func (t *Tool) Description() string {
	return "Generate images using multiple AI providers (DALL-E, Imagen, GPT-Image-1, Nano Banana Pro). " +
		"Supports automatic fallback, cost tracking, provider availability checking, and conversational editing."
}

// Execute runs one operation. The input must carry an "operation" field;
// remaining fields are operation-specific.
func (t *Tool) Execute(ctx context.Context, input map[string]any) Result {
	operation, _ := input["operation"].(string)
	if operation == "" {
		return errResult(map[string]any{
			"message":          "missing 'operation' field in input",
			"valid_operations": validOperations,
		})
	}

	switch operation {
	case "generate":
		return t.executeGenerate(ctx, input)
	case "check_availability":
		return t.executeCheckAvailability(ctx, input)
	case "get_cost_estimate":
		return t.executeCostEstimate(input)
	case "create_conversation":
		return t.executeCreateConversation(ctx, input)
	case "close_conversation":
		return t.executeCloseConversation(input)
	default:
		return errResult(map[string]any{
			"message":          fmt.Sprintf("unknown operation: %s", operation),
			"valid_operations": validOperations,
		})
	}
}

func (t *Tool) executeGenerate(ctx context.Context, input map[string]any) Result {
	prompt, _ := input["prompt"].(string)
	if prompt == "" {
		return errResult(map[string]any{"message": "missing required field: 'prompt'"})
	}
	outputPath, _ := input["output_path"].(string)
	if outputPath == "" {
		return errResult(map[string]any{"message": "missing required field: 'output_path'"})
	}

	req := &picgen.GenerationRequest{
		Prompt:     prompt,
		OutputPath: outputPath,
	}
	if preferred, ok := input["preferred_api"].(string); ok {
		req.PreferredAPI = preferred
	}
	if params, ok := input["params"].(map[string]any); ok {
		req.Params = picgen.Params(params)
	}
	if convID, ok := input["conversation_id"].(string); ok {
		req.ConversationID = convID
	}

	result, err := t.gen.Generate(ctx, req)
	if err != nil {
		return errResult(map[string]any{
			"message":   err.Error(),
			"operation": "generate",
		})
	}

	if !result.Success {
		return errResult(map[string]any{
			"message":  result.Error,
			"api_used": result.APIUsed.String(),
			"cost":     result.Cost,
		})
	}

	return Result{
		Success: true,
		Output: map[string]any{
			"success":    true,
			"api_used":   result.APIUsed.String(),
			"cost":       result.Cost,
			"local_path": result.LocalPath,
			"message":    fmt.Sprintf("Image generated successfully with %s ($%.3f)", result.APIUsed, result.Cost),
		},
	}
}

func (t *Tool) executeCheckAvailability(ctx context.Context, input map[string]any) Result {
	provider, _ := input["provider"].(string)
	if provider == "" {
		return errResult(map[string]any{"message": "missing required field: 'provider'"})
	}

	available, err := t.gen.Available(ctx, provider)
	if err != nil {
		return errResult(map[string]any{
			"message":             err.Error(),
			"available_providers": providerNames(t.gen.Providers()),
		})
	}

	status := "not available"
	if available {
		status = "available"
	}
	id, _ := picgen.ResolveProvider(provider)
	return Result{
		Success: true,
		Output: map[string]any{
			"provider":  id.String(),
			"available": available,
			"message":   fmt.Sprintf("%s is %s", id, status),
		},
	}
}

func (t *Tool) executeCostEstimate(input map[string]any) Result {
	provider, _ := input["provider"].(string)
	if provider == "" {
		return errResult(map[string]any{"message": "missing required field: 'provider'"})
	}

	var params picgen.Params
	if p, ok := input["params"].(map[string]any); ok {
		params = picgen.Params(p)
	}

	cost, err := t.gen.EstimateCost(provider, params)
	if err != nil {
		return errResult(map[string]any{
			"message":             err.Error(),
			"available_providers": providerNames(t.gen.Providers()),
		})
	}

	id, _ := picgen.ResolveProvider(provider)
	return Result{
		Success: true,
		Output: map[string]any{
			"provider":       id.String(),
			"cost_per_image": cost,
			"currency":       "USD",
			"message":        fmt.Sprintf("%s estimated cost: $%.3f per image", id, cost),
		},
	}
}

func (t *Tool) executeCreateConversation(ctx context.Context, input map[string]any) Result {
	provider, _ := input["provider"].(string)
	if provider == "" {
		return errResult(map[string]any{"message": "missing required field: 'provider'"})
	}

	opts := picgen.SessionOptions{Thinking: true}
	if params, ok := input["params"].(map[string]any); ok {
		p := picgen.Params(params)
		opts.Thinking = p.Bool("thinking", true)
		opts.Search = p.Bool("search", false)
		opts.AspectRatio = p.String("aspect_ratio", "")
		opts.Resolution = p.String("resolution", "")
	}

	id, err := t.gen.CreateConversation(ctx, provider, opts)
	if err != nil {
		return errResult(map[string]any{
			"message":   err.Error(),
			"operation": "create_conversation",
		})
	}

	return Result{
		Success: true,
		Output: map[string]any{
			"conversation_id": id,
			"message":         fmt.Sprintf("Conversation %s created", id),
		},
	}
}

func (t *Tool) executeCloseConversation(input map[string]any) Result {
	id, _ := input["conversation_id"].(string)
	if id == "" {
		return errResult(map[string]any{"message": "missing required field: 'conversation_id'"})
	}

	if err := t.gen.CloseConversation(id); err != nil {
		return errResult(map[string]any{"message": err.Error()})
	}

	return Result{
		Success: true,
		Output: map[string]any{
			"conversation_id": id,
			"message":         fmt.Sprintf("Conversation %s closed", id),
		},
	}
}

func errResult(detail map[string]any) Result {
	return Result{Success: false, Error: detail}
}

func providerNames(ids []picgen.ProviderID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return names
}
