package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service books and manages follow-up calls on the calendar.
//
// Tenancy invariant: workspace_id is required and enforced in all queries.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

func (s *Service) Create(ctx context.Context, workspaceID string, req CreateRequest) (ScheduledCall, error) {
	if workspaceID == "" {
		return ScheduledCall{}, ErrInvalidArgument
	}
	day, err := req.parse()
	if err != nil {
		return ScheduledCall{}, err
	}

	now := s.clock().UTC()
	sc := ScheduledCall{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		ContactID:   req.ContactID,
		Date:        day,
		TimeSlot:    req.TimeSlot,
		Status:      ScheduleStatusUpcoming,
		Reason:      req.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, sc); err != nil {
		return ScheduledCall{}, err
	}
	return sc, nil
}

func (s *Service) Get(ctx context.Context, workspaceID, id string) (ScheduledCall, error) {
	if workspaceID == "" || id == "" {
		return ScheduledCall{}, ErrInvalidArgument
	}
	return s.repo.Get(ctx, workspaceID, id)
}

// ListView returns the calls visible in one calendar view. view is
// "day", "week" or "month"; anchor picks which day/week/month.
func (s *Service) ListView(ctx context.Context, workspaceID, view string, anchor time.Time) ([]ScheduledCall, error) {
	if workspaceID == "" {
		return nil, ErrInvalidArgument
	}
	if anchor.IsZero() {
		anchor = s.clock()
	}

	var from, to time.Time
	switch view {
	case "day":
		from, to = DayRange(anchor)
	case "week":
		from, to = WeekRange(anchor)
	case "month", "":
		from, to = MonthRange(anchor)
	default:
		return nil, ErrInvalidArgument
	}
	return s.repo.ListRange(ctx, workspaceID, from, to)
}

// Update rebooks an existing call: new contact, day, slot or reason. Status
// stays whatever it already was.
func (s *Service) Update(ctx context.Context, workspaceID, id string, req CreateRequest) (ScheduledCall, error) {
	if workspaceID == "" || id == "" {
		return ScheduledCall{}, ErrInvalidArgument
	}
	day, err := req.parse()
	if err != nil {
		return ScheduledCall{}, err
	}

	existing, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return ScheduledCall{}, err
	}

	existing.ContactID = req.ContactID
	existing.Date = day
	existing.TimeSlot = req.TimeSlot
	existing.Reason = req.Reason
	existing.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, existing)
}

func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	if workspaceID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, workspaceID, id)
}

func (s *Service) Cancel(ctx context.Context, workspaceID, id string) (ScheduledCall, error) {
	return s.setStatus(ctx, workspaceID, id, ScheduleStatusCanceled)
}

func (s *Service) Complete(ctx context.Context, workspaceID, id string) (ScheduledCall, error) {
	return s.setStatus(ctx, workspaceID, id, ScheduleStatusCompleted)
}

func (s *Service) setStatus(ctx context.Context, workspaceID, id string, status ScheduleStatus) (ScheduledCall, error) {
	if workspaceID == "" || id == "" {
		return ScheduledCall{}, ErrInvalidArgument
	}
	return s.repo.UpdateStatus(ctx, workspaceID, id, status, s.clock().UTC())
}
