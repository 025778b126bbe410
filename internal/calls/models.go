package calls

import "time"

// Call represents a tenant-scoped AI collection call.
//
// Multi-tenant invariant: WorkspaceID is required on every record.
//
// Status transitions are owned by the core API; the dashboard only reads them
// (directly or via the status webhook) and never fabricates a transition.
type Call struct {
	CallID      string `json:"call_id"`
	WorkspaceID string `json:"workspace_id"`
	CampaignID  string `json:"campaign_id,omitempty"`

	ContactID string `json:"contact_id"`
	AgentID   string `json:"agent_id,omitempty"`

	From string `json:"from,omitempty"`
	To   string `json:"to"`

	Status  CallStatus  `json:"status"`
	Outcome CallOutcome `json:"outcome,omitempty"`

	// DurationSeconds is the call duration in seconds.
	DurationSeconds int `json:"duration"`

	RecordingURL string `json:"recording_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CallStatus string

const (
	CallStatusQueued     CallStatus = "queued"
	CallStatusRinging    CallStatus = "ringing"
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusFailed     CallStatus = "failed"
	CallStatusNoAnswer   CallStatus = "no_answer"
	CallStatusBusy       CallStatus = "busy"
	CallStatusCanceled   CallStatus = "canceled"
)

// Terminal reports whether no further status transition can occur.
func (s CallStatus) Terminal() bool {
	switch s {
	case CallStatusCompleted, CallStatusFailed, CallStatusNoAnswer, CallStatusBusy, CallStatusCanceled:
		return true
	default:
		return false
	}
}

// CallOutcome is the conversational result of a completed voice call,
// reported by the core API.
type CallOutcome string

const (
	OutcomePaymentAgreed     CallOutcome = "payment_agreed"
	OutcomeCallbackRequested CallOutcome = "callback_requested"
	OutcomeNoAnswer          CallOutcome = "no_answer"
	OutcomeBusy              CallOutcome = "busy"
)
