package scheduler

import (
	"errors"
	"time"
)

// ScheduledCall is a follow-up call booked on the calendar. Times are kept as
// a calendar date plus a wall-clock slot so a booking means the same thing in
// whatever timezone the agent desk runs in.
type ScheduledCall struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`
	ContactID   string `json:"contact_id" db:"contact_id"`

	// Date is the calendar day, truncated to midnight UTC.
	Date time.Time `json:"date" db:"date"`
	// TimeSlot is the wall-clock slot in "15:04" form.
	TimeSlot string `json:"time" db:"time_slot"`

	Status ScheduleStatus `json:"status" db:"status"`
	// Reason is why the call was booked (callback requested, payment follow-up).
	Reason string `json:"reason,omitempty" db:"reason"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ScheduleStatus string

const (
	ScheduleStatusUpcoming  ScheduleStatus = "upcoming"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCanceled  ScheduleStatus = "canceled"
)

var (
	ErrNotFound        = errors.New("scheduled call not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// CreateRequest carries a new booking.
type CreateRequest struct {
	ContactID string `json:"contact_id"`
	Date      string `json:"date"` // "2006-01-02"
	TimeSlot  string `json:"time"` // "15:04"
	Reason    string `json:"reason,omitempty"`
}

func (r CreateRequest) parse() (time.Time, error) {
	if r.ContactID == "" {
		return time.Time{}, ErrInvalidArgument
	}
	day, err := time.ParseInLocation("2006-01-02", r.Date, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidArgument
	}
	if _, err := time.Parse("15:04", r.TimeSlot); err != nil {
		return time.Time{}, ErrInvalidArgument
	}
	return day, nil
}

/* ===== CALENDAR RANGES ===== */

// DayRange returns [start, end) for the day containing t, in UTC.
func DayRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// WeekRange returns [start, end) for the Monday-based week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	start, _ := DayRange(t)
	// Monday is day 1; Sunday wraps to 6 days back.
	offset := int(start.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	start = start.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// MonthRange returns [start, end) for the calendar month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
