package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_CreateAndGetRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	svc.clock = fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	sc, err := svc.Create(context.Background(), "ws-1", CreateRequest{
		ContactID: "c-1",
		Date:      "2025-03-14",
		TimeSlot:  "10:30",
		Reason:    "callback requested",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sc.Status != ScheduleStatusUpcoming {
		t.Fatalf("status = %q, want upcoming", sc.Status)
	}

	got, err := svc.Get(context.Background(), "ws-1", sc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ContactID != "c-1" || got.TimeSlot != "10:30" || !got.Date.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing contact", CreateRequest{Date: "2025-03-14", TimeSlot: "10:30"}},
		{"bad date", CreateRequest{ContactID: "c-1", Date: "14/03/2025", TimeSlot: "10:30"}},
		{"bad time", CreateRequest{ContactID: "c-1", Date: "2025-03-14", TimeSlot: "10:30pm"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), "ws-1", tc.req); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestService_ListViewRanges(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	// Saturday March 15, plus one earlier in the same week and one next month.
	mustCreate := func(date, slot string) ScheduledCall {
		t.Helper()
		sc, err := svc.Create(ctx, "ws-1", CreateRequest{ContactID: "c-1", Date: date, TimeSlot: slot})
		if err != nil {
			t.Fatalf("Create(%s): %v", date, err)
		}
		return sc
	}
	mustCreate("2025-03-15", "09:00")
	mustCreate("2025-03-11", "14:00")
	mustCreate("2025-04-02", "10:00")

	anchor := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	day, err := svc.ListView(ctx, "ws-1", "day", anchor)
	if err != nil {
		t.Fatalf("day view: %v", err)
	}
	if len(day) != 1 {
		t.Fatalf("day view len = %d, want 1", len(day))
	}

	week, err := svc.ListView(ctx, "ws-1", "week", anchor)
	if err != nil {
		t.Fatalf("week view: %v", err)
	}
	if len(week) != 2 {
		t.Fatalf("week view len = %d, want 2", len(week))
	}
	if !week[0].Date.Before(week[1].Date) {
		t.Fatal("week view not ordered by date")
	}

	month, err := svc.ListView(ctx, "ws-1", "month", anchor)
	if err != nil {
		t.Fatalf("month view: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("month view len = %d, want 2", len(month))
	}

	if _, err := svc.ListView(ctx, "ws-1", "year", anchor); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("unknown view err = %v, want ErrInvalidArgument", err)
	}
}

func TestService_WorkspaceIsolation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	sc, err := svc.Create(ctx, "ws-1", CreateRequest{ContactID: "c-1", Date: "2025-03-14", TimeSlot: "10:30"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, "ws-2", sc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-workspace Get err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Cancel(ctx, "ws-2", sc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-workspace Cancel err = %v, want ErrNotFound", err)
	}
}

func TestService_CancelAndComplete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	sc, err := svc.Create(ctx, "ws-1", CreateRequest{ContactID: "c-1", Date: "2025-03-14", TimeSlot: "10:30"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	canceled, err := svc.Cancel(ctx, "ws-1", sc.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != ScheduleStatusCanceled {
		t.Fatalf("status = %q, want canceled", canceled.Status)
	}

	completed, err := svc.Complete(ctx, "ws-1", sc.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if completed.Status != ScheduleStatusCompleted {
		t.Fatalf("status = %q, want completed", completed.Status)
	}
}

func TestWeekRange_MondayBased(t *testing.T) {
	// Sunday 2025-03-16 belongs to the week starting Monday 2025-03-10.
	from, to := WeekRange(time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC))
	if !from.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("week start = %v", from)
	}
	if !to.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("week end = %v", to)
	}
}

func TestService_UpdateRebooks(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	svc.clock = fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	sc, err := svc.Create(context.Background(), "ws-1", CreateRequest{
		ContactID: "c-1",
		Date:      "2025-03-14",
		TimeSlot:  "10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Update(context.Background(), "ws-1", sc.ID, CreateRequest{
		ContactID: "c-2",
		Date:      "2025-03-21",
		TimeSlot:  "14:00",
		Reason:    "moved a week out",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ContactID != "c-2" || got.TimeSlot != "14:00" || !got.Date.Equal(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Status != ScheduleStatusUpcoming {
		t.Fatalf("update changed status to %q", got.Status)
	}

	if _, err := svc.Update(context.Background(), "ws-1", sc.ID, CreateRequest{ContactID: "c-2", Date: "bad", TimeSlot: "14:00"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad date: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Update(context.Background(), "ws-2", sc.ID, CreateRequest{ContactID: "c-2", Date: "2025-03-21", TimeSlot: "14:00"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross workspace: err = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	svc.clock = fixedClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	sc, err := svc.Create(context.Background(), "ws-1", CreateRequest{
		ContactID: "c-1",
		Date:      "2025-03-14",
		TimeSlot:  "10:30",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), "ws-2", sc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross workspace delete: err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), "ws-1", sc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), "ws-1", sc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: err = %v, want ErrNotFound", err)
	}
}
