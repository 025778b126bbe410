package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sautiai-dashboard/internal/calls"
	"sautiai-dashboard/internal/contacts"
	"sautiai-dashboard/internal/upstream"
)

// Result is what a dispatcher reports for one item. Status must be terminal.
type Result struct {
	Status  ItemStatus
	Outcome Outcome
	CallID  string
}

// Dispatcher performs the channel-specific send for a single item.
//
// Contract: a returned error marks the item failed and the orchestrator moves
// on; dispatchers never retry internally.
type Dispatcher interface {
	Dispatch(ctx context.Context, req Request, item Item, contact contacts.Contact) (Result, error)
}

// Registry resolves the dispatcher for a channel. All channels must be
// registered at wiring time; resolution failure is a programming error
// surfaced before any item is touched.
type Registry struct {
	dispatchers map[Channel]Dispatcher
}

func NewRegistry() *Registry {
	return &Registry{dispatchers: make(map[Channel]Dispatcher)}
}

func (r *Registry) Register(ch Channel, d Dispatcher) {
	r.dispatchers[ch] = d
}

func (r *Registry) Resolve(ch Channel) (Dispatcher, error) {
	d, ok := r.dispatchers[ch]
	if !ok {
		return nil, fmt.Errorf("campaign: no dispatcher for channel %q", ch)
	}
	return d, nil
}

/* ===================== VOICE ===================== */

// CallGateway is the slice of the upstream client used by voice dispatch.
type CallGateway interface {
	StartCall(ctx context.Context, req upstream.StartCallRequest) (calls.Call, error)
	GetCallStatus(ctx context.Context, workspaceID, callID string) (calls.Call, error)
}

// VoiceDispatcher places one real call per contact and waits for the core API
// to report a terminal status. There is no locally simulated progress: the
// status shown for a voice item is always the backend's own result.
type VoiceDispatcher struct {
	Gateway CallGateway

	// StatusPoll and CallTimeout bound the wait for a terminal status.
	StatusPoll  time.Duration
	CallTimeout time.Duration
}

func (d VoiceDispatcher) Dispatch(ctx context.Context, req Request, item Item, contact contacts.Contact) (Result, error) {
	if d.Gateway == nil {
		return Result{}, errors.New("campaign: call gateway not configured")
	}

	call, err := d.Gateway.StartCall(ctx, upstream.StartCallRequest{
		WorkspaceID: req.WorkspaceID,
		ContactID:   contact.ID,
		AgentID:     req.AgentID,
		CampaignID:  item.ID,
	})
	if err != nil {
		return Result{}, err
	}

	poll := d.StatusPoll
	if poll <= 0 {
		poll = 2 * time.Second
	}
	timeout := d.CallTimeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(poll)
	defer tick.Stop()

	cur := call
	for !cur.Status.Terminal() {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-deadline.C:
			return Result{}, fmt.Errorf("campaign: call %s did not finish within %s", call.CallID, timeout)
		case <-tick.C:
		}

		got, err := d.Gateway.GetCallStatus(ctx, req.WorkspaceID, call.CallID)
		if err != nil {
			// Transient status-poll failure is not a call failure; keep waiting.
			continue
		}
		cur = got
	}

	return voiceResult(cur), nil
}

func voiceResult(c calls.Call) Result {
	switch c.Status {
	case calls.CallStatusCompleted:
		out := Outcome(c.Outcome)
		if out == "" {
			out = OutcomePaymentAgreed
		}
		return Result{Status: ItemStatusCompleted, Outcome: out, CallID: c.CallID}
	case calls.CallStatusNoAnswer:
		return Result{Status: ItemStatusCompleted, Outcome: OutcomeNoAnswer, CallID: c.CallID}
	case calls.CallStatusBusy:
		return Result{Status: ItemStatusCompleted, Outcome: OutcomeBusy, CallID: c.CallID}
	default: // failed, canceled
		return Result{Status: ItemStatusFailed, Outcome: OutcomeFailed, CallID: c.CallID}
	}
}

/* ===================== MESSAGE CHANNELS ===================== */

// MessageGateway is the slice of the upstream client used by text channels.
type MessageGateway interface {
	SendMessage(ctx context.Context, req upstream.SendMessageRequest) (upstream.SendMessageResult, error)
}

// CreditDebiter charges one messaging credit per dispatched message,
// idempotently keyed by the item id. nil disables credit enforcement.
type CreditDebiter interface {
	DebitMessage(ctx context.Context, workspaceID, itemID string) error
}

// MessageDispatcher renders the template for the contact, debits one credit
// and hands the message to the core API.
type MessageDispatcher struct {
	Channel Channel
	Gateway MessageGateway
	Credits CreditDebiter
}

func (d MessageDispatcher) Dispatch(ctx context.Context, req Request, item Item, contact contacts.Contact) (Result, error) {
	if d.Gateway == nil {
		return Result{}, errors.New("campaign: message gateway not configured")
	}

	if d.Credits != nil {
		if err := d.Credits.DebitMessage(ctx, req.WorkspaceID, item.ID); err != nil {
			return Result{}, fmt.Errorf("campaign: credit debit: %w", err)
		}
	}

	rendered := req.Template.Render(contact)
	res, err := d.Gateway.SendMessage(ctx, upstream.SendMessageRequest{
		WorkspaceID: req.WorkspaceID,
		ContactID:   contact.ID,
		Channel:     string(d.Channel),
		Subject:     rendered.Subject,
		Body:        rendered.Body,
		CampaignID:  item.ID,
	})
	if err != nil {
		return Result{}, err
	}
	return messageResult(d.Channel, res), nil
}

func messageResult(ch Channel, res upstream.SendMessageResult) Result {
	status := ItemStatusDelivered
	switch ItemStatus(res.Status) {
	case ItemStatusCompleted, ItemStatusDelivered, ItemStatusRead:
		status = ItemStatus(res.Status)
	case ItemStatusFailed:
		return Result{Status: ItemStatusFailed, Outcome: OutcomeFailed}
	}

	out := Outcome(res.Outcome)
	if out == "" {
		out = OutcomeDelivered
	}
	return Result{Status: status, Outcome: out}
}
