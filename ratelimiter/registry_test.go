package ratelimiter

import (
	"testing"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("non-existent")
	if err == nil {
		t.Error("expected error for non-existent provider, got nil")
	}

	limiter := New(100, 10)
	registry.Set("dalle", limiter)

	retrieved, err := registry.Get("dalle")
	if err != nil {
		t.Errorf("unexpected error getting provider: %v", err)
	}
	if retrieved != limiter {
		t.Error("retrieved limiter does not match set limiter")
	}

	limiter2 := New(200, 20)
	registry.Set("dalle", limiter2)
	retrieved2, err := registry.Get("dalle")
	if err != nil {
		t.Errorf("unexpected error getting provider: %v", err)
	}
	if retrieved2 != limiter2 {
		t.Error("retrieved limiter does not match overwritten limiter")
	}
}
