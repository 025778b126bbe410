package scheduler

import (
	"context"
	"time"
)

// Repository persists scheduled calls. All queries are workspace-scoped.
type Repository interface {
	Insert(ctx context.Context, sc ScheduledCall) error
	Get(ctx context.Context, workspaceID, id string) (ScheduledCall, error)
	// ListRange returns calls with date in [from, to), ordered by date then slot.
	ListRange(ctx context.Context, workspaceID string, from, to time.Time) ([]ScheduledCall, error)
	UpdateStatus(ctx context.Context, workspaceID, id string, status ScheduleStatus, now time.Time) (ScheduledCall, error)
	// Update rewrites the booking fields (contact, date, slot, reason) of an
	// existing record. Status is not touched here.
	Update(ctx context.Context, sc ScheduledCall) (ScheduledCall, error)
	Delete(ctx context.Context, workspaceID, id string) error
}
