package pricing

import (
	"context"
	"time"
)

// MemoryRepo is a simple in-memory repository useful for tests and early development.
// It is workspace-scoped and prefers the most recent effective rate.
//
// NOTE: This is not intended for production; replace with Postgres implementation.
type MemoryRepo struct {
	Channel []ChannelRate
	Minute  []MinuteRate
}

func (r *MemoryRepo) FindChannelRate(ctx context.Context, workspaceID, channel string, at time.Time) (ChannelRate, bool, error) {
	_ = ctx

	var best ChannelRate
	found := false

	for _, p := range r.Channel {
		if p.WorkspaceID != workspaceID {
			continue
		}
		if p.Channel != channel {
			continue
		}
		if p.Status != PricingStatusActive {
			continue
		}
		if at.Before(p.EffectiveFrom) {
			continue
		}
		if p.EffectiveTo != nil && !at.Before(*p.EffectiveTo) {
			continue
		}

		if !found || p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
			found = true
		}
	}

	return best, found, nil
}

func (r *MemoryRepo) FindMinuteRate(ctx context.Context, workspaceID string, at time.Time) (MinuteRate, bool, error) {
	_ = ctx

	var best MinuteRate
	found := false

	for _, p := range r.Minute {
		if p.WorkspaceID != workspaceID {
			continue
		}
		if p.Status != PricingStatusActive {
			continue
		}
		if at.Before(p.EffectiveFrom) {
			continue
		}
		if p.EffectiveTo != nil && !at.Before(*p.EffectiveTo) {
			continue
		}

		if !found || p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
			found = true
		}
	}

	return best, found, nil
}
