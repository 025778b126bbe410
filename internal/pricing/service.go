package pricing

import (
	"context"
	"errors"
	"time"

	"sautiai-dashboard/internal/campaign"
)

// Service calculates costs based on workspace-scoped pricing.
//
// Contract:
// - Per-channel rate lookup with effective windows
// - Pure calculation + repository lookups, no provider SDK calls
// - Campaign estimates are advisory; campaign start never blocks on them
type Service struct {
	repo  RateRepository
	clock func() time.Time
}

func NewService(repo RateRepository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// RateRepository abstracts pricing persistence.
// Implementation can be Postgres, cached, etc.
type RateRepository interface {
	FindChannelRate(ctx context.Context, workspaceID, channel string, at time.Time) (ChannelRate, bool, error)
	FindMinuteRate(ctx context.Context, workspaceID string, at time.Time) (MinuteRate, bool, error)
}

var (
	ErrPricingNotFound   = errors.New("pricing not found")
	ErrInvalidPricingReq = errors.New("invalid pricing request")
)

// EstimateCampaign prices a campaign before it starts: item count times the
// channel's per-item rate.
func (s *Service) EstimateCampaign(ctx context.Context, workspaceID string, ch campaign.Channel, itemCount int) (int64, string, error) {
	if workspaceID == "" || itemCount <= 0 {
		return 0, "", ErrInvalidPricingReq
	}
	if !campaign.ValidChannel(ch) {
		return 0, "", ErrInvalidPricingReq
	}

	rate, ok, err := s.repo.FindChannelRate(ctx, workspaceID, string(ch), s.clock().UTC())
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", ErrPricingNotFound
	}
	return rate.RatePerItemMinor * int64(itemCount), rate.Currency, nil
}

type CallCostRequest struct {
	WorkspaceID string

	// DurationSeconds is the call duration in seconds (billable seconds are derived).
	DurationSeconds int

	// At determines which effective pricing to use. If zero, service clock is used.
	At time.Time
}

type CallCost struct {
	WorkspaceID string

	Currency string

	BillableSeconds int
	BillableMinutes int

	RatePerMinuteMinor int64
	TotalMinor         int64
}

// CalculateCallCost computes one voice call's cost from its duration.
func (s *Service) CalculateCallCost(ctx context.Context, req CallCostRequest) (CallCost, error) {
	if req.WorkspaceID == "" {
		return CallCost{}, ErrInvalidPricingReq
	}
	if req.DurationSeconds <= 0 {
		return CallCost{}, ErrInvalidPricingReq
	}

	at := req.At
	if at.IsZero() {
		at = s.clock().UTC()
	}

	mr, ok, err := s.repo.FindMinuteRate(ctx, req.WorkspaceID, at)
	if err != nil {
		return CallCost{}, err
	}
	if !ok {
		return CallCost{}, ErrPricingNotFound
	}

	billableSec := billableSeconds(req.DurationSeconds, mr.MinimumBillableSeconds, mr.BillingIncrementSeconds)
	billableMin := billableMinutesFromSeconds(billableSec)

	return CallCost{
		WorkspaceID:        req.WorkspaceID,
		Currency:           mr.Currency,
		BillableSeconds:    billableSec,
		BillableMinutes:    billableMin,
		RatePerMinuteMinor: mr.RatePerMinuteMinor,
		TotalMinor:         mr.RatePerMinuteMinor * int64(billableMin),
	}, nil
}

func billableSeconds(actualSec int, minSec int, incrementSec int) int {
	if actualSec < 0 {
		return 0
	}
	if minSec <= 0 {
		minSec = 0
	}
	if incrementSec <= 0 {
		incrementSec = 60
	}

	sec := actualSec
	if sec < minSec {
		sec = minSec
	}

	// round up to nearest increment
	q := sec / incrementSec
	r := sec % incrementSec
	if r != 0 {
		q++
	}
	return q * incrementSec
}

func billableMinutesFromSeconds(sec int) int {
	if sec <= 0 {
		return 0
	}
	m := sec / 60
	if sec%60 != 0 {
		m++
	}
	if m <= 0 {
		return 0
	}
	return m
}
