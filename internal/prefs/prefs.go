// Package prefs stores per-workspace dashboard preferences, such as the
// default AI agent for voice campaigns. Preferences are advisory: clearing
// one never breaks a flow, it only forces an explicit choice next time.
package prefs

import (
	"context"
	"errors"
)

const keyDefaultAgent = "default_agent"

// Store is a small workspace-scoped key/value surface.
type Store interface {
	Get(ctx context.Context, workspaceID, key string) (string, bool, error)
	Set(ctx context.Context, workspaceID, key, value string) error
	Clear(ctx context.Context, workspaceID, key string) error
}

var ErrInvalidArgument = errors.New("invalid argument")

// Service exposes the named preferences the dashboard actually uses.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// DefaultAgent returns the saved default agent id, or ok=false when the
// workspace has none and the caller must ask the user to pick one.
func (s *Service) DefaultAgent(ctx context.Context, workspaceID string) (string, bool, error) {
	if workspaceID == "" {
		return "", false, ErrInvalidArgument
	}
	return s.store.Get(ctx, workspaceID, keyDefaultAgent)
}

func (s *Service) SetDefaultAgent(ctx context.Context, workspaceID, agentID string) error {
	if workspaceID == "" || agentID == "" {
		return ErrInvalidArgument
	}
	return s.store.Set(ctx, workspaceID, keyDefaultAgent, agentID)
}

func (s *Service) ClearDefaultAgent(ctx context.Context, workspaceID string) error {
	if workspaceID == "" {
		return ErrInvalidArgument
	}
	return s.store.Clear(ctx, workspaceID, keyDefaultAgent)
}
