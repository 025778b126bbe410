package campaign

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Gate enforces the one-active-campaign-per-workspace cap. The production
// implementation sits on the shared Redis concurrency scripts; tests use an
// in-memory gate.
type Gate interface {
	Acquire(ctx context.Context, workspaceID string) (bool, error)
	Release(ctx context.Context, workspaceID string)
}

// CostEstimator prices a campaign before it starts. Estimation failures are
// logged, not fatal: the estimate is advisory.
type CostEstimator interface {
	EstimateCampaign(ctx context.Context, workspaceID string, ch Channel, itemCount int) (amountMinor int64, currency string, err error)
}

// Manager owns campaign runs per workspace. The previous run (and its
// history) is discarded when a new campaign starts; nothing is persisted.
type Manager struct {
	registry  *Registry
	source    ContactSource
	gate      Gate
	estimator CostEstimator
	log       *slog.Logger

	clock     func() time.Time
	pausePoll time.Duration

	mu   sync.Mutex
	runs map[string]*Run // workspace_id -> latest run
}

type ManagerOption func(*Manager)

// WithPausePoll overrides the pause re-check interval (tests).
func WithPausePoll(d time.Duration) ManagerOption {
	return func(m *Manager) { m.pausePoll = d }
}

func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) { m.clock = clock }
}

func NewManager(registry *Registry, source ContactSource, gate Gate, estimator CostEstimator, log *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		registry:  registry,
		source:    source,
		gate:      gate,
		estimator: estimator,
		log:       log,
		clock:     time.Now,
		pausePoll: 200 * time.Millisecond,
		runs:      make(map[string]*Run),
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start validates the request, claims the workspace slot and launches the
// sequential dispatch loop in the background. The returned snapshot shows
// every item pending.
func (m *Manager) Start(ctx context.Context, req Request) (Snapshot, error) {
	if err := req.Validate(); err != nil {
		return Snapshot{}, err
	}

	dispatcher, err := m.registry.Resolve(req.Channel)
	if err != nil {
		return Snapshot{}, err
	}

	if m.gate != nil {
		ok, err := m.gate.Acquire(ctx, req.WorkspaceID)
		if err != nil {
			return Snapshot{}, err
		}
		if !ok {
			return Snapshot{}, ErrAlreadyActive
		}
	}

	items := make([]Item, len(req.ContactIDs))
	for i, cid := range req.ContactIDs {
		items[i] = Item{
			ID:        uuid.NewString(),
			ContactID: cid,
			Channel:   req.Channel,
			Status:    ItemStatusPending,
		}
	}

	run := &Run{
		id:          uuid.NewString(),
		workspaceID: req.WorkspaceID,
		req:         req,
		items:       items,
		state:       StateRunning,
		active:      true,
		startedAt:   m.clock().UTC(),
		done:        make(chan struct{}),
		dispatcher:  dispatcher,
		source:      m.source,
		log:         m.log,
		clock:       m.clock,
		pausePoll:   m.pausePoll,
	}

	if m.estimator != nil {
		minor, currency, err := m.estimator.EstimateCampaign(ctx, req.WorkspaceID, req.Channel, len(items))
		if err != nil {
			m.log.Warn("campaign cost estimate failed", "workspace_id", req.WorkspaceID, "err", err)
		} else {
			run.estMinor = minor
			run.currency = currency
		}
	}

	m.mu.Lock()
	m.runs[req.WorkspaceID] = run
	m.mu.Unlock()

	m.log.Info("campaign started",
		"campaign_id", run.id, "workspace_id", req.WorkspaceID,
		"channel", req.Channel, "contacts", len(items))

	// The loop outlives the HTTP request that started it; it is bounded by
	// the item list, the stop flag and process shutdown.
	loopCtx := context.WithoutCancel(ctx)
	go func() {
		run.loop(loopCtx)
		if m.gate != nil {
			m.gate.Release(loopCtx, req.WorkspaceID)
		}
		close(run.done)
		m.log.Info("campaign finished", "campaign_id", run.id, "state", run.Snapshot().State)
	}()

	return run.Snapshot(), nil
}

// Active returns the latest run for the workspace, running or not. The run is
// only forgotten when a new campaign replaces it.
func (m *Manager) Active(workspaceID string) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[workspaceID]
	if !ok {
		return nil, ErrNoActive
	}
	return run, nil
}

func (m *Manager) Pause(workspaceID string) error {
	run, err := m.Active(workspaceID)
	if err != nil {
		return err
	}
	run.Pause()
	return nil
}

func (m *Manager) Resume(workspaceID string) error {
	run, err := m.Active(workspaceID)
	if err != nil {
		return err
	}
	run.Resume()
	return nil
}

func (m *Manager) Stop(workspaceID string) error {
	run, err := m.Active(workspaceID)
	if err != nil {
		return err
	}
	run.Stop()
	return nil
}
