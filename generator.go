package picgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mhpenta/picgen/ratelimiter"
)

// ErrProviderNotRegistered is returned when a resolved provider has no
// client registered with the generator.
var ErrProviderNotRegistered = errors.New("provider not registered")

// Generator orchestrates image generation across multiple providers:
// provider selection, fallback on failure, cost tracking, and multi-turn
// conversation routing. It is safe for concurrent use; independent calls
// run fully in parallel.
type Generator struct {
	// Registered clients, one per provider.
	clients map[ProviderID]Client

	// Fallback order over registered providers.
	priority []ProviderID

	// Active multi-turn sessions.
	store *ConversationStore

	// Rate limiting (per provider, optional).
	limiters ratelimiter.Registry

	estimator TokenEstimator

	// Sink for persisting generated bytes.
	sink Sink

	logger *slog.Logger

	mu           sync.Mutex
	totalCost    float64
	failedCloses int
}

var _ Sink = (*FileSink)(nil)

// New creates a Generator over the given clients. The fallback order is
// the default priority (nano-banana-pro, gptimage, imagen, dalle)
// restricted to the providers actually registered.
func New(clients []Client, opts ...Option) (*Generator, error) {
	if len(clients) == 0 {
		return nil, &ConfigurationError{Err: ErrNoClients}
	}

	g := &Generator{
		clients:   make(map[ProviderID]Client, len(clients)),
		store:     NewConversationStore(),
		limiters:  ratelimiter.NewRegistry(),
		estimator: NewSimpleTokenEstimator(),
		sink:      NewFileSink(),
		logger:    slog.Default(),
	}

	for _, c := range clients {
		g.clients[c.Provider()] = c
	}
	for _, id := range DefaultPriority() {
		if _, ok := g.clients[id]; ok {
			g.priority = append(g.priority, id)
		}
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Generate creates an image from a text prompt, trying providers in
// priority order until one succeeds.
//
// The returned error is non-nil only for synchronous request violations:
// empty prompt, invalid output path, unresolvable alias, or a conversation
// that is missing, busy, or bound to a different provider. Ordinary
// provider unavailability and failures never produce an error; they are
// aggregated into an unsuccessful ImageResult instead.
func (g *Generator) Generate(ctx context.Context, req *GenerationRequest) (*ImageResult, error) {
	preferred, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	var conv *Conversation
	if req.ConversationID != "" {
		conv, err = g.store.acquire(req.ConversationID)
		if err != nil {
			return nil, err
		}
		defer g.store.release(req.ConversationID)

		if preferred != "" && preferred != conv.Provider {
			return nil, &ConversationMismatchError{
				ID:        conv.ID,
				Bound:     conv.Provider,
				Requested: preferred,
			}
		}
	}

	candidates := g.candidateOrder(preferred, conv)

	g.logger.Debug("starting generation",
		"prompt_length", len(req.Prompt),
		"candidates", len(candidates),
		"conversation", req.ConversationID != "",
	)

	var (
		reasons       []string
		lastAttempted ProviderID
	)

	for _, id := range candidates {
		if err := ctx.Err(); err != nil {
			reasons = append(reasons, fmt.Sprintf("%s: not attempted (%v)", id, err))
			break
		}

		client := g.clients[id]

		if reason, ok := g.admit(id, req.Prompt); !ok {
			g.logger.Warn("provider rate limited, trying next", "provider", string(id))
			reasons = append(reasons, reason)
			continue
		}

		if !client.Available(ctx) {
			g.logger.Warn("provider not available, trying next", "provider", string(id))
			reasons = append(reasons, fmt.Sprintf("%s: not available", id))
			continue
		}

		start := time.Now()
		lastAttempted = id

		img, err := g.attempt(ctx, client, conv, req)
		if err != nil {
			failure := &ProviderFailure{Provider: id, Reason: err.Error(), Err: err}
			g.logger.Warn("generation failed, trying next",
				"provider", string(id),
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err.Error(),
			)
			reasons = append(reasons, failure.Error())
			continue
		}

		localPath, err := g.sink.SaveFile(ctx, img.Data, req.OutputPath, img.MIMEType)
		if err != nil {
			g.logger.Warn("saving image failed, trying next",
				"provider", string(id),
				"error", err.Error(),
			)
			reasons = append(reasons, fmt.Sprintf("%s: saving image: %v", id, err))
			continue
		}

		if conv != nil {
			if err := g.store.AppendTurn(conv.ID); err != nil {
				// Session removed mid-flight; the image is already saved.
				g.logger.Warn("recording turn failed", "conversation", conv.ID, "error", err.Error())
			}
		}

		cost := client.EstimateCost(req.Params)
		g.addCost(cost)

		g.logger.Info("generation completed",
			"provider", string(id),
			"duration_ms", time.Since(start).Milliseconds(),
			"cost_usd", cost,
			"path", localPath,
		)

		return &ImageResult{
			Success:   true,
			APIUsed:   id,
			Cost:      cost,
			LocalPath: localPath,
		}, nil
	}

	msg := fmt.Sprintf("all %d candidate providers failed (%s): %s",
		len(candidates), joinProviders(candidates), strings.Join(reasons, "; "))
	if len(reasons) == 0 {
		msg = "no candidate providers configured"
	}

	g.logger.Error("generation failed on every provider", "error", msg)

	return &ImageResult{
		Success: false,
		APIUsed: lastAttempted,
		Error:   msg,
	}, nil
}

// attempt runs one provider call, routing through the session when the
// request is conversational.
func (g *Generator) attempt(ctx context.Context, client Client, conv *Conversation, req *GenerationRequest) (*GeneratedImage, error) {
	if conv == nil {
		return client.Generate(ctx, req.Prompt, req.Params)
	}

	sc, ok := client.(SessionClient)
	if !ok {
		return nil, &CapabilityError{Provider: client.Provider()}
	}
	return sc.ContinueSession(ctx, conv.Handle(), req.Prompt)
}

// candidateOrder builds the provider order for one request. A bound
// conversation restricts the candidates to its provider: session state is
// provider-specific, so there is no cross-provider fallback mid-conversation.
func (g *Generator) candidateOrder(preferred ProviderID, conv *Conversation) []ProviderID {
	if conv != nil {
		return []ProviderID{conv.Provider}
	}
	if preferred == "" {
		return g.priority
	}

	order := make([]ProviderID, 0, len(g.priority)+1)
	if _, ok := g.clients[preferred]; ok {
		order = append(order, preferred)
	}
	for _, id := range g.priority {
		if id != preferred {
			order = append(order, id)
		}
	}
	return order
}

// admit consults the provider's rate limiter, if one is configured.
func (g *Generator) admit(id ProviderID, prompt string) (string, bool) {
	const tokenBuffer = 100

	limiter, err := g.limiters.Get(string(id))
	if err != nil {
		return "", true
	}

	tokens := g.estimator.EstimateTokens(prompt) + tokenBuffer
	if limiter.TryConsume(tokens) {
		return "", true
	}
	return fmt.Sprintf("%s: rate limited, retry after %v", id, limiter.TimeUntilAvailable(tokens)), false
}

// CreateConversation opens a provider-side multi-turn editing session and
// registers it in the store. The provider must support sessions; a
// single-shot-only provider yields a CapabilityError.
func (g *Generator) CreateConversation(ctx context.Context, providerOrAlias string, opts SessionOptions) (string, error) {
	id, err := ResolveProvider(providerOrAlias)
	if err != nil {
		return "", err
	}

	client, ok := g.clients[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProviderNotRegistered, id)
	}

	sc, ok := client.(SessionClient)
	if !ok {
		return "", &CapabilityError{Provider: id}
	}

	handle, err := sc.StartSession(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("starting %s session: %w", id, err)
	}

	conv := g.store.Create(id, opts, handle)
	g.logger.Info("conversation created", "conversation", conv.ID, "provider", string(id))
	return conv.ID, nil
}

// CloseConversation releases a session. Closing an unknown id is a no-op.
// Provider-side release failures are logged and counted, not surfaced.
func (g *Generator) CloseConversation(id string) error {
	conv, err := g.store.Get(id)
	if err != nil {
		return nil
	}

	if sc, ok := g.clients[conv.Provider].(SessionClient); ok {
		if err := sc.EndSession(conv.Handle()); err != nil {
			g.logger.Warn("provider session release failed",
				"conversation", id,
				"provider", string(conv.Provider),
				"error", err.Error(),
			)
			g.mu.Lock()
			g.failedCloses++
			g.mu.Unlock()
		}
	}

	g.store.Remove(id)
	g.logger.Info("conversation closed", "conversation", id)
	return nil
}

// Conversation returns a snapshot of a live session.
func (g *Generator) Conversation(id string) (Conversation, error) {
	return g.store.Get(id)
}

// EstimateCost returns the fixed price one generation would cost on the
// given provider. Pure: no network call, no session interaction.
func (g *Generator) EstimateCost(providerOrAlias string, params Params) (float64, error) {
	id, err := ResolveProvider(providerOrAlias)
	if err != nil {
		return 0, err
	}

	client, ok := g.clients[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrProviderNotRegistered, id)
	}
	return client.EstimateCost(params), nil
}

// Available reports whether the given provider is configured and ready.
func (g *Generator) Available(ctx context.Context, providerOrAlias string) (bool, error) {
	id, err := ResolveProvider(providerOrAlias)
	if err != nil {
		return false, err
	}

	client, ok := g.clients[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrProviderNotRegistered, id)
	}
	return client.Available(ctx), nil
}

// Providers returns the registered providers in fallback order.
func (g *Generator) Providers() []ProviderID {
	out := make([]ProviderID, len(g.priority))
	copy(out, g.priority)
	return out
}

// TotalCost returns the accumulated estimated cost of all successful
// generations made through this generator.
func (g *Generator) TotalCost() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.totalCost
}

// FailedSessionCloses returns how many provider-side session releases
// failed. A growing count points at leaked provider resources.
func (g *Generator) FailedSessionCloses() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failedCloses
}

// Close releases all client resources.
func (g *Generator) Close() error {
	var errs []error
	for id, client := range g.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", id, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (g *Generator) addCost(cost float64) {
	g.mu.Lock()
	g.totalCost += cost
	g.mu.Unlock()
}
