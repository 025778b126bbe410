package reporting

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// CallsSummaryRequest requests aggregated call metrics.
// Workspace isolation: WorkspaceID is required.

type CallsSummaryRequest struct {
	WorkspaceID string    `json:"workspace_id"`
	Range       TimeRange `json:"range"`
	CampaignID  string    `json:"campaign_id,omitempty"`
}

type CallsSummary struct {
	WorkspaceID string `json:"workspace_id"`
	CampaignID  string `json:"campaign_id,omitempty"`

	TotalCalls      int `json:"total_calls"`
	CompletedCalls  int `json:"completed_calls"`
	FailedCalls     int `json:"failed_calls"`
	NoAnswerCalls   int `json:"no_answer_calls"`
	BusyCalls       int `json:"busy_calls"`
	CanceledCalls   int `json:"canceled_calls"`
	InProgressCalls int `json:"in_progress_calls"`

	// ByOutcome counts terminal calls per outcome (payment_agreed,
	// callback_requested, no_answer, busy).
	ByOutcome map[string]int `json:"by_outcome"`

	TotalDurationSeconds   int `json:"total_duration_seconds"`
	AverageDurationSeconds int `json:"average_duration_seconds"`

	RecordedCalls int `json:"recorded_calls"`
}

// CreditSpendRequest requests aggregated messaging-credit metrics.
// Spend is derived from immutable credit ledger entries scoped to workspace.

type CreditSpendRequest struct {
	WorkspaceID string    `json:"workspace_id"`
	Range       TimeRange `json:"range"`
}

type CreditSpendSummary struct {
	WorkspaceID string `json:"workspace_id"`

	TotalDebits  int64 `json:"total_debits"`
	TotalTopUps  int64 `json:"total_topups"`
	ManualGrants int64 `json:"manual_grants"`
	NetDelta     int64 `json:"net_delta"`
}

// RecoveryMetricsRequest captures debt-recovery outcomes for one campaign.

type RecoveryMetricsRequest struct {
	WorkspaceID string    `json:"workspace_id"`
	Range       TimeRange `json:"range"`
	CampaignID  string    `json:"campaign_id"`
}

type RecoveryMetrics struct {
	WorkspaceID string `json:"workspace_id"`
	CampaignID  string `json:"campaign_id"`

	CallsAttempted     int `json:"calls_attempted"`
	CallsConnected     int `json:"calls_connected"`
	PaymentsAgreed     int `json:"payments_agreed"`
	CallbacksRequested int `json:"callbacks_requested"`

	ConnectionRate float64 `json:"connection_rate"`
	RecoveryRate   float64 `json:"recovery_rate"`
}
