package campaign

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sautiai-dashboard/internal/contacts"
)

// ContactSource resolves the contacts a campaign was started for. A lookup
// failure fails that one item and the loop keeps going.
type ContactSource interface {
	GetContact(ctx context.Context, workspaceID, contactID string) (contacts.Contact, error)
}

// Run is one campaign execution. Items are processed strictly in selection
// order, one at a time; there is never parallel dispatch. All mutable state
// is guarded by mu so control calls and snapshot reads can come from any
// request goroutine while the loop runs.
type Run struct {
	id          string
	workspaceID string
	req         Request

	mu        sync.Mutex
	items     []Item
	state     State
	processed int

	// active/paused are cooperative flags: checked at the top of
	// each iteration, never interrupting the item in flight.
	active bool
	paused bool

	startedAt time.Time
	estMinor  int64
	currency  string

	done chan struct{}

	dispatcher Dispatcher
	source     ContactSource
	log        *slog.Logger
	clock      func() time.Time

	// pausePoll controls how often the loop re-checks the paused flag.
	pausePoll time.Duration
}

func (r *Run) ID() string { return r.id }

// Done closes when the loop has finished (completed or stopped).
func (r *Run) Done() <-chan struct{} { return r.done }

/* ===================== CONTROL ===================== */

// Pause stops the loop from advancing to the next item. The current item
// always finishes; mid-item suspension is deliberately not supported.
func (r *Run) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		r.paused = true
		r.state = StatePaused
	}
}

func (r *Run) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePaused {
		r.paused = false
		r.state = StateRunning
	}
}

// Stop halts the loop after the current item finishes. Already-dispatched
// items keep their terminal status; nothing is rolled back.
func (r *Run) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning || r.state == StatePaused {
		r.active = false
		r.paused = false
	}
}

/* ===================== VIEWS ===================== */

func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]Item, len(r.items))
	copy(items, r.items)

	total := len(items)
	progress := 0.0
	if total > 0 {
		progress = float64(r.processed) / float64(total) * 100
	}

	return Snapshot{
		ID:                 r.id,
		WorkspaceID:        r.workspaceID,
		Channel:            r.req.Channel,
		State:              r.state,
		Items:              items,
		Processed:          r.processed,
		Total:              total,
		Progress:           progress,
		StartedAt:          r.startedAt,
		EstimatedCostMinor: r.estMinor,
		Currency:           r.currency,
	}
}

func (r *Run) Summary() Summary {
	snap := r.Snapshot()

	s := Summary{
		ID:                 snap.ID,
		Channel:            snap.Channel,
		State:              snap.State,
		Total:              snap.Total,
		ByStatus:           make(map[ItemStatus]int),
		ByOutcome:          make(map[Outcome]int),
		EstimatedCostMinor: snap.EstimatedCostMinor,
		Currency:           snap.Currency,
	}
	for _, it := range snap.Items {
		s.ByStatus[it.Status]++
		if it.Outcome != "" {
			s.ByOutcome[it.Outcome]++
		}
	}
	return s
}

/* ===================== LOOP ===================== */

// loop drives the items sequentially. The caller (Manager) closes done and
// releases the workspace gate once loop returns.
func (r *Run) loop(ctx context.Context) {
	for i := range r.items {
		// Paused is polled here only; the flag never interrupts an item.
		for r.isPaused() {
			select {
			case <-ctx.Done():
				r.finish(StateStopped)
				return
			case <-time.After(r.pausePoll):
			}
		}
		if !r.isActive() || ctx.Err() != nil {
			r.finish(StateStopped)
			return
		}

		r.beginItem(i)
		r.processItem(ctx, i)
		r.endItem(i)
	}

	r.finish(StateCompleted)
}

func (r *Run) processItem(ctx context.Context, i int) {
	item := r.itemAt(i)

	contact, err := r.source.GetContact(ctx, r.workspaceID, item.ContactID)
	if err != nil {
		r.failItem(i, "contact lookup failed: "+err.Error())
		return
	}

	res, err := r.dispatcher.Dispatch(ctx, r.req, item, contact)
	if err != nil {
		// Per-item failure isolation: record it and keep going. No retry.
		r.log.Warn("campaign item failed",
			"campaign_id", r.id, "item_id", item.ID, "contact_id", item.ContactID, "err", err)
		r.failItem(i, err.Error())
		return
	}

	r.mu.Lock()
	r.items[i].Status = res.Status
	r.items[i].Outcome = res.Outcome
	r.items[i].CallID = res.CallID
	r.mu.Unlock()
}

func (r *Run) beginItem(i int) {
	inflight := ItemStatusSending
	if r.req.Channel == ChannelVoice {
		inflight = ItemStatusCalling
	}
	r.mu.Lock()
	r.items[i].Status = inflight
	r.items[i].StartedAt = r.clock().UTC()
	r.mu.Unlock()
}

func (r *Run) endItem(i int) {
	r.mu.Lock()
	r.items[i].FinishedAt = r.clock().UTC()
	r.processed++
	r.mu.Unlock()
}

func (r *Run) failItem(i int, msg string) {
	r.mu.Lock()
	r.items[i].Status = ItemStatusFailed
	r.items[i].Outcome = OutcomeFailed
	r.items[i].Error = msg
	r.mu.Unlock()
}

func (r *Run) finish(terminal State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = terminal
	r.active = false
	r.paused = false
}

func (r *Run) itemAt(i int) Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[i]
}

func (r *Run) isPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused && r.active
}

func (r *Run) isActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
