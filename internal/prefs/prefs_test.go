package prefs

import (
	"context"
	"errors"
	"testing"
)

func TestService_DefaultAgentLifecycle(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, ok, err := svc.DefaultAgent(ctx, "ws-1"); err != nil || ok {
		t.Fatalf("fresh workspace: ok=%v err=%v, want no default", ok, err)
	}

	if err := svc.SetDefaultAgent(ctx, "ws-1", "agent-7"); err != nil {
		t.Fatalf("SetDefaultAgent: %v", err)
	}
	got, ok, err := svc.DefaultAgent(ctx, "ws-1")
	if err != nil || !ok || got != "agent-7" {
		t.Fatalf("DefaultAgent = (%q, %v, %v), want agent-7", got, ok, err)
	}

	// Clearing forces an explicit selection next time.
	if err := svc.ClearDefaultAgent(ctx, "ws-1"); err != nil {
		t.Fatalf("ClearDefaultAgent: %v", err)
	}
	if _, ok, err := svc.DefaultAgent(ctx, "ws-1"); err != nil || ok {
		t.Fatalf("after clear: ok=%v err=%v, want no default", ok, err)
	}
}

func TestService_WorkspacesAreIsolated(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if err := svc.SetDefaultAgent(ctx, "ws-1", "agent-1"); err != nil {
		t.Fatalf("SetDefaultAgent: %v", err)
	}
	if _, ok, _ := svc.DefaultAgent(ctx, "ws-2"); ok {
		t.Fatal("ws-2 must not see ws-1 preference")
	}
}

func TestService_Validation(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	if _, _, err := svc.DefaultAgent(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if err := svc.SetDefaultAgent(ctx, "ws-1", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
