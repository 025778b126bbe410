package campaign

import (
	"errors"
	"strings"
	"unicode/utf8"
	"time"
)

// Channel is the outbound medium a campaign uses for every selected contact.
type Channel string

const (
	ChannelVoice    Channel = "voice"
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

func ValidChannel(ch Channel) bool {
	switch ch {
	case ChannelVoice, ChannelEmail, ChannelSMS, ChannelWhatsApp:
		return true
	default:
		return false
	}
}

// SMSMaxLength is the hard cap on an SMS body, checked before a campaign may
// start. Templates are measured unresolved; placeholder expansion is expected
// to stay within provider concatenation limits.
const SMSMaxLength = 160

// ItemStatus is the per-contact state machine:
//
//	pending -> sending|calling -> completed|delivered|read | failed
//
// failed and the right-hand statuses are terminal; an item never leaves a
// terminal status.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusSending   ItemStatus = "sending"
	ItemStatusCalling   ItemStatus = "calling"
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusDelivered ItemStatus = "delivered"
	ItemStatusRead      ItemStatus = "read"
	ItemStatusFailed    ItemStatus = "failed"
)

func (s ItemStatus) Terminal() bool {
	switch s {
	case ItemStatusCompleted, ItemStatusDelivered, ItemStatusRead, ItemStatusFailed:
		return true
	default:
		return false
	}
}

// Outcome is the per-item result taxonomy. Voice items draw from the call
// outcomes; message channels report delivery-style outcomes.
type Outcome string

const (
	OutcomePaymentAgreed     Outcome = "payment_agreed"
	OutcomeCallbackRequested Outcome = "callback_requested"
	OutcomeNoAnswer          Outcome = "no_answer"
	OutcomeBusy              Outcome = "busy"

	OutcomeDelivered Outcome = "delivered"
	OutcomeOpened    Outcome = "opened"
	OutcomeBounced   Outcome = "bounced"
	OutcomeClicked   Outcome = "clicked"
	OutcomeRead      Outcome = "read"
	OutcomeReplied   Outcome = "replied"
	OutcomeFailed    Outcome = "failed"
)

// Item tracks one contact through the campaign.
type Item struct {
	ID        string     `json:"id"`
	ContactID string     `json:"contact_id"`
	Channel   Channel    `json:"channel"`
	Status    ItemStatus `json:"status"`
	Outcome   Outcome    `json:"outcome,omitempty"`
	Error     string     `json:"error,omitempty"`

	// CallID links a voice item to the call the core API created for it.
	CallID string `json:"call_id,omitempty"`

	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
}

// Template carries the channel-specific message content. Voice campaigns use
// the agent's prompt instead and leave this empty.
type Template struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Request describes a campaign start.
type Request struct {
	WorkspaceID string   `json:"workspace_id"`
	Channel     Channel  `json:"channel"`
	ContactIDs  []string `json:"contact_ids"`

	// AgentID is mandatory for voice campaigns.
	AgentID string `json:"agent_id,omitempty"`

	Template Template `json:"template"`
}

// Validation errors surfaced to the user before any dispatch happens.
var (
	ErrNoContacts     = errors.New("campaign: at least one contact must be selected")
	ErrInvalidChannel = errors.New("campaign: invalid channel")
	ErrAgentRequired  = errors.New("Please select an AI agent")
	ErrEmptyTemplate  = errors.New("campaign: message body is required")
	ErrEmptySubject   = errors.New("campaign: email subject is required")
	ErrSMSTooLong     = errors.New("campaign: SMS body exceeds 160 characters")

	ErrAlreadyActive = errors.New("campaign: a campaign is already running for this workspace")
	ErrNoActive      = errors.New("campaign: no active campaign")
)

// Validate enforces every start precondition: non-empty selection,
// voice requires an agent, text channels require content, SMS length cap.
func (r Request) Validate() error {
	if r.WorkspaceID == "" {
		return errors.New("campaign: workspace_id required")
	}
	if !ValidChannel(r.Channel) {
		return ErrInvalidChannel
	}
	if len(r.ContactIDs) == 0 {
		return ErrNoContacts
	}

	if r.Channel == ChannelVoice {
		if strings.TrimSpace(r.AgentID) == "" {
			return ErrAgentRequired
		}
		return nil
	}

	if strings.TrimSpace(r.Template.Body) == "" {
		return ErrEmptyTemplate
	}
	if r.Channel == ChannelEmail && strings.TrimSpace(r.Template.Subject) == "" {
		return ErrEmptySubject
	}
	// Character cap, not bytes: Swahili and other non-ASCII bodies count
	// the same as ASCII ones.
	if r.Channel == ChannelSMS && utf8.RuneCountInString(r.Template.Body) > SMSMaxLength {
		return ErrSMSTooLong
	}
	return nil
}

// State is the lifecycle of a whole campaign run.
type State string

const (
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateStopped   State = "stopped"
	StateCompleted State = "completed"
)

// Snapshot is a point-in-time view of campaign progress for the UI.
type Snapshot struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Channel     Channel   `json:"channel"`
	State       State     `json:"state"`
	Items       []Item    `json:"items"`
	Processed   int       `json:"processed"`
	Total       int       `json:"total"`
	Progress    float64   `json:"progress"`
	StartedAt   time.Time `json:"started_at"`

	// EstimatedCostMinor is the pricing estimate computed at start, in minor
	// currency units.
	EstimatedCostMinor int64  `json:"estimated_cost_minor,omitempty"`
	Currency           string `json:"currency,omitempty"`
}

// Summary aggregates terminal results for display after completion or stop.
type Summary struct {
	ID          string          `json:"id"`
	Channel     Channel         `json:"channel"`
	State       State           `json:"state"`
	Total       int             `json:"total"`
	ByStatus    map[ItemStatus]int `json:"by_status"`
	ByOutcome   map[Outcome]int    `json:"by_outcome"`
	EstimatedCostMinor int64    `json:"estimated_cost_minor,omitempty"`
	Currency           string   `json:"currency,omitempty"`
}
