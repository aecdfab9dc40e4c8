package picgen

import (
	"context"
)

// MockClient is a mock implementation of Client.
type MockClient struct {
	ID               ProviderID
	AvailableFunc    func(ctx context.Context) bool
	EstimateCostFunc func(params Params) float64
	GenerateFunc     func(ctx context.Context, prompt string, params Params) (*GeneratedImage, error)
	CloseFunc        func() error
}

func (m *MockClient) Provider() ProviderID { return m.ID }

func (m *MockClient) Available(ctx context.Context) bool {
	if m.AvailableFunc != nil {
		return m.AvailableFunc(ctx)
	}
	return true
}

func (m *MockClient) EstimateCost(params Params) float64 {
	if m.EstimateCostFunc != nil {
		return m.EstimateCostFunc(params)
	}
	return 0.04
}

func (m *MockClient) Generate(ctx context.Context, prompt string, params Params) (*GeneratedImage, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, params)
	}
	return &GeneratedImage{Data: []byte("fake-image"), MIMEType: "image/png", Provider: m.ID}, nil
}

func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockSessionClient extends MockClient with session operations.
type MockSessionClient struct {
	MockClient
	StartSessionFunc    func(ctx context.Context, opts SessionOptions) (SessionHandle, error)
	ContinueSessionFunc func(ctx context.Context, handle SessionHandle, prompt string) (*GeneratedImage, error)
	EndSessionFunc      func(handle SessionHandle) error
}

func (m *MockSessionClient) StartSession(ctx context.Context, opts SessionOptions) (SessionHandle, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, opts)
	}
	return "mock-handle", nil
}

func (m *MockSessionClient) ContinueSession(ctx context.Context, handle SessionHandle, prompt string) (*GeneratedImage, error) {
	if m.ContinueSessionFunc != nil {
		return m.ContinueSessionFunc(ctx, handle, prompt)
	}
	return &GeneratedImage{Data: []byte("fake-turn-image"), MIMEType: "image/png", Provider: m.ID}, nil
}

func (m *MockSessionClient) EndSession(handle SessionHandle) error {
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(handle)
	}
	return nil
}
