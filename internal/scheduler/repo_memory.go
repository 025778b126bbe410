package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory repository useful for tests and early development.
type MemoryRepo struct {
	mu    sync.Mutex
	calls map[string]ScheduledCall
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{calls: make(map[string]ScheduledCall)}
}

func (r *MemoryRepo) Insert(_ context.Context, sc ScheduledCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[sc.ID] = sc
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, workspaceID, id string) (ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.calls[id]
	if !ok || sc.WorkspaceID != workspaceID {
		return ScheduledCall{}, ErrNotFound
	}
	return sc, nil
}

func (r *MemoryRepo) ListRange(_ context.Context, workspaceID string, from, to time.Time) ([]ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []ScheduledCall
	for _, sc := range r.calls {
		if sc.WorkspaceID != workspaceID {
			continue
		}
		if sc.Date.Before(from) || !sc.Date.Before(to) {
			continue
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TimeSlot < out[j].TimeSlot
	})
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, in ScheduledCall) (ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.calls[in.ID]
	if !ok || sc.WorkspaceID != in.WorkspaceID {
		return ScheduledCall{}, ErrNotFound
	}
	sc.ContactID = in.ContactID
	sc.Date = in.Date
	sc.TimeSlot = in.TimeSlot
	sc.Reason = in.Reason
	sc.UpdatedAt = in.UpdatedAt
	r.calls[in.ID] = sc
	return sc, nil
}

func (r *MemoryRepo) Delete(_ context.Context, workspaceID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.calls[id]
	if !ok || sc.WorkspaceID != workspaceID {
		return ErrNotFound
	}
	delete(r.calls, id)
	return nil
}

func (r *MemoryRepo) UpdateStatus(_ context.Context, workspaceID, id string, status ScheduleStatus, now time.Time) (ScheduledCall, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.calls[id]
	if !ok || sc.WorkspaceID != workspaceID {
		return ScheduledCall{}, ErrNotFound
	}
	sc.Status = status
	sc.UpdatedAt = now
	r.calls[id] = sc
	return sc, nil
}
