package reporting

import (
	"context"
	"errors"
	"time"

	"sautiai-dashboard/internal/calls"
	"sautiai-dashboard/internal/credits"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting.
//
// IMPORTANT:
// - Methods must enforce workspace filtering.
// - Implementations should query immutable sources when possible (credit
//   ledger, audit events, call records).

type Repository interface {
	ListCalls(ctx context.Context, workspaceID string, from, to time.Time, campaignID string) ([]calls.Call, error)
	ListCreditLedger(ctx context.Context, workspaceID string, from, to time.Time) ([]credits.LedgerEntry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) CallsSummary(ctx context.Context, req CallsSummaryRequest) (CallsSummary, error) {
	if req.WorkspaceID == "" {
		return CallsSummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return CallsSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return CallsSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListCalls(ctx, req.WorkspaceID, req.Range.From, req.Range.To, req.CampaignID)
	if err != nil {
		return CallsSummary{}, err
	}

	out := CallsSummary{WorkspaceID: req.WorkspaceID, CampaignID: req.CampaignID, ByOutcome: map[string]int{}}
	for _, c := range rows {
		out.TotalCalls++
		out.TotalDurationSeconds += c.DurationSeconds
		if c.RecordingURL != "" {
			out.RecordedCalls++
		}
		if c.Outcome != "" {
			out.ByOutcome[string(c.Outcome)]++
		}
		switch c.Status {
		case calls.CallStatusCompleted:
			out.CompletedCalls++
		case calls.CallStatusFailed:
			out.FailedCalls++
		case calls.CallStatusNoAnswer:
			out.NoAnswerCalls++
		case calls.CallStatusBusy:
			out.BusyCalls++
		case calls.CallStatusCanceled:
			out.CanceledCalls++
		case calls.CallStatusInProgress:
			out.InProgressCalls++
		case calls.CallStatusRinging, calls.CallStatusQueued:
			// not counted separately
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.TotalCalls
	}
	return out, nil
}

func (s *Service) CreditSpend(ctx context.Context, req CreditSpendRequest) (CreditSpendSummary, error) {
	if req.WorkspaceID == "" {
		return CreditSpendSummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return CreditSpendSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return CreditSpendSummary{}, errors.New("reporting: repository not configured")
	}

	ledger, err := s.repo.ListCreditLedger(ctx, req.WorkspaceID, req.Range.From, req.Range.To)
	if err != nil {
		return CreditSpendSummary{}, err
	}

	out := CreditSpendSummary{WorkspaceID: req.WorkspaceID}
	for _, e := range ledger {
		switch e.Type {
		case credits.EntryTypeDebit:
			out.TotalDebits += -e.Credits
		case credits.EntryTypeTopUp:
			out.TotalTopUps += e.Credits
		case credits.EntryTypeManual:
			out.ManualGrants += e.Credits
		}
		out.NetDelta += e.Credits
	}
	return out, nil
}

// RecoveryMetrics derives debt-recovery figures from call outcomes: a
// payment_agreed outcome counts as a recovery.
func (s *Service) RecoveryMetrics(ctx context.Context, req RecoveryMetricsRequest) (RecoveryMetrics, error) {
	if req.WorkspaceID == "" || req.CampaignID == "" {
		return RecoveryMetrics{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return RecoveryMetrics{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return RecoveryMetrics{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListCalls(ctx, req.WorkspaceID, req.Range.From, req.Range.To, req.CampaignID)
	if err != nil {
		return RecoveryMetrics{}, err
	}

	out := RecoveryMetrics{WorkspaceID: req.WorkspaceID, CampaignID: req.CampaignID}
	out.CallsAttempted = len(rows)
	for _, c := range rows {
		if c.Status == calls.CallStatusCompleted {
			out.CallsConnected++
		}
		switch c.Outcome {
		case calls.OutcomePaymentAgreed:
			out.PaymentsAgreed++
		case calls.OutcomeCallbackRequested:
			out.CallbacksRequested++
		}
	}

	if out.CallsAttempted > 0 {
		out.ConnectionRate = float64(out.CallsConnected) / float64(out.CallsAttempted)
		out.RecoveryRate = float64(out.PaymentsAgreed) / float64(out.CallsAttempted)
	}
	return out, nil
}
