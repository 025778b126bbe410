package livecall

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"sautiai-dashboard/internal/calls"
	"sautiai-dashboard/internal/upstream"
)

// Fetcher is the slice of the upstream client the monitor polls.
type Fetcher interface {
	GetLiveTranscript(ctx context.Context, workspaceID, callID string) (upstream.LiveTranscript, error)
}

// Update is one increment pushed to live-view subscribers: the lines that
// appeared since the previous poll plus the current call status.
type Update struct {
	CallID   string                 `json:"call_id"`
	Status   calls.CallStatus       `json:"status"`
	NewLines []calls.TranscriptLine `json:"new_lines,omitempty"`
	Terminal bool                   `json:"terminal"`
}

// Monitor owns one poller per watched call, regardless of how many viewers
// are attached; N dashboards watching one call cost one upstream poll stream.
//
// Polling semantics follow the live view contract: a fixed interval, each
// tick independent, tick failures logged and swallowed, no backoff.
type Monitor struct {
	fetch    Fetcher
	interval time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	pollers map[string]*poller
}

func NewMonitor(fetch Fetcher, interval time.Duration, log *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		fetch:    fetch,
		interval: interval,
		log:      log,
		pollers:  make(map[string]*poller),
	}
}

// Subscription is one viewer's feed. Close detaches the viewer; the last
// close tears down the poller so no fetches survive a closed view.
type Subscription struct {
	C chan Update

	once sync.Once
	p    *poller
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.p.unsubscribe(s) })
}

// Subscribe attaches a viewer to a call's live feed, starting the poller on
// first attach.
func (m *Monitor) Subscribe(workspaceID, callID string) (*Subscription, error) {
	if workspaceID == "" || callID == "" {
		return nil, errors.New("livecall: workspace_id and call id required")
	}
	key := workspaceID + "|" + callID

	m.mu.Lock()
	p, ok := m.pollers[key]
	if !ok {
		p = &poller{
			m:           m,
			key:         key,
			workspaceID: workspaceID,
			callID:      callID,
			subs:        make(map[*Subscription]struct{}),
			stop:        make(chan struct{}),
		}
		m.pollers[key] = p
		go p.run()
	}
	m.mu.Unlock()

	sub := &Subscription{C: make(chan Update, 16), p: p}
	if !p.subscribe(sub) {
		// Poller raced to terminal shutdown; restart via a fresh subscribe.
		return m.Subscribe(workspaceID, callID)
	}
	return sub, nil
}

// CallStatusChanged implements upstream.CallStatusSink: a webhook beats the
// next poll tick, so terminal statuses reach viewers without waiting.
func (m *Monitor) CallStatusChanged(_ context.Context, ev upstream.CallStatusEvent) {
	m.mu.Lock()
	p := m.pollers[ev.WorkspaceID+"|"+ev.CallID]
	m.mu.Unlock()
	if p == nil {
		return
	}
	p.broadcast(Update{CallID: ev.CallID, Status: ev.Status, Terminal: ev.Status.Terminal()})
	if ev.Status.Terminal() {
		p.shutdown()
	}
}

func (m *Monitor) remove(key string) {
	m.mu.Lock()
	delete(m.pollers, key)
	m.mu.Unlock()
}

/* ===================== POLLER ===================== */

type poller struct {
	m           *Monitor
	key         string
	workspaceID string
	callID      string

	mu      sync.Mutex
	subs    map[*Subscription]struct{}
	seen    int
	stopped bool

	stop chan struct{}
}

func (p *poller) subscribe(s *Subscription) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	p.subs[s] = struct{}{}
	return true
}

func (p *poller) unsubscribe(s *Subscription) {
	p.mu.Lock()
	delete(p.subs, s)
	empty := len(p.subs) == 0
	p.mu.Unlock()

	if empty {
		p.shutdown()
	}
}

// shutdown stops the tick loop exactly once and closes every remaining
// subscriber channel, so a viewer that missed the terminal broadcast (full
// buffer) still observes the end of the feed. Any response already in flight
// is discarded by the stopped check inside broadcast.
func (p *poller) shutdown() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stop)
	for s := range p.subs {
		close(s.C)
	}
	p.subs = nil
	p.mu.Unlock()

	p.m.remove(p.key)
}

func (p *poller) run() {
	ticker := time.NewTicker(p.m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
		}
		p.tick()
	}
}

func (p *poller) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.m.interval*2)
	defer cancel()

	lt, err := p.m.fetch.GetLiveTranscript(ctx, p.workspaceID, p.callID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			// Transcript not ready yet; not an error worth noise.
			return
		}
		// Swallow and retry next tick; the view stays open.
		p.m.log.Warn("live transcript poll failed", "call_id", p.callID, "err", err)
		return
	}

	p.mu.Lock()
	var fresh []calls.TranscriptLine
	if len(lt.Lines) > p.seen {
		fresh = lt.Lines[p.seen:]
		p.seen = len(lt.Lines)
	}
	p.mu.Unlock()

	terminal := lt.Status.Terminal()
	if len(fresh) > 0 || terminal {
		p.broadcast(Update{CallID: p.callID, Status: lt.Status, NewLines: fresh, Terminal: terminal})
	}
	if terminal {
		p.shutdown()
	}
}

// broadcast fans an update out to every live subscriber. Slow consumers drop
// updates rather than stalling the poller. No sends happen after shutdown.
func (p *poller) broadcast(u Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	for s := range p.subs {
		select {
		case s.C <- u:
		default:
		}
	}
}
