package db

import (
	"context"
	"errors"
	"testing"
)

func TestConnFromContext_Empty(t *testing.T) {
	if ConnFromContext(context.Background()) != nil {
		t.Error("expected nil querier for bare context")
	}
}

func TestPassthrough_RunsFn(t *testing.T) {
	called := false
	err := Passthrough{}.WithinTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected fn to be called")
	}
}

func TestPassthrough_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	err := Passthrough{}.WithinTx(context.Background(), func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}
