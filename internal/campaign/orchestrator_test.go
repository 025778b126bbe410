package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"sautiai-dashboard/internal/contacts"
)

/* ===================== FAKES ===================== */

type fakeSource struct {
	mu       sync.Mutex
	contacts map[string]contacts.Contact
}

func newFakeSource(cs ...contacts.Contact) *fakeSource {
	s := &fakeSource{contacts: make(map[string]contacts.Contact)}
	for _, c := range cs {
		s.contacts[c.ID] = c
	}
	return s
}

func (s *fakeSource) GetContact(_ context.Context, _, contactID string) (contacts.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[contactID]
	if !ok {
		return contacts.Contact{}, errors.New("contact not found")
	}
	return c, nil
}

// fakeDispatcher records dispatch order and can fail or block per contact.
type fakeDispatcher struct {
	mu      sync.Mutex
	order   []string
	failFor map[string]bool

	// blockOn, when set, makes the dispatcher wait on release for that contact.
	blockOn string
	entered chan struct{}
	release chan struct{}
}

func (d *fakeDispatcher) Dispatch(_ context.Context, _ Request, _ Item, c contacts.Contact) (Result, error) {
	d.mu.Lock()
	d.order = append(d.order, c.ID)
	fail := d.failFor[c.ID]
	block := d.blockOn == c.ID
	d.mu.Unlock()

	if block {
		d.entered <- struct{}{}
		<-d.release
	}
	if fail {
		return Result{}, errors.New("send rejected")
	}
	return Result{Status: ItemStatusDelivered, Outcome: OutcomeDelivered}, nil
}

func (d *fakeDispatcher) dispatched() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

type memoryGate struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemoryGate() *memoryGate { return &memoryGate{held: make(map[string]bool)} }

func (g *memoryGate) Acquire(_ context.Context, ws string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[ws] {
		return false, nil
	}
	g.held[ws] = true
	return true, nil
}

func (g *memoryGate) Release(_ context.Context, ws string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, ws)
}

func testContacts() []contacts.Contact {
	return []contacts.Contact{
		{ID: "c1", Name: "Jane Wanjiku", PhoneNumber: "+254712000001", DebtAmount: 2500, PaymentStatus: contacts.PaymentStatusOverdue},
		{ID: "c2", Name: "Otieno Omondi", PhoneNumber: "+254712000002", DebtAmount: 1200, PaymentStatus: contacts.PaymentStatusPartial},
		{ID: "c3", Name: "Amina Hassan", PhoneNumber: "+254712000003", DebtAmount: 9000, PaymentStatus: contacts.PaymentStatusOverdue},
	}
}

func newTestManager(t *testing.T, d Dispatcher, opts ...ManagerOption) *Manager {
	t.Helper()
	reg := NewRegistry()
	for _, ch := range []Channel{ChannelVoice, ChannelEmail, ChannelSMS, ChannelWhatsApp} {
		reg.Register(ch, d)
	}
	opts = append([]ManagerOption{WithPausePoll(5 * time.Millisecond)}, opts...)
	return NewManager(reg, newFakeSource(testContacts()...), newMemoryGate(), nil, slog.Default(), opts...)
}

func waitDone(t *testing.T, run *Run) {
	t.Helper()
	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("campaign did not finish")
	}
}

func smsRequest(ids ...string) Request {
	return Request{
		WorkspaceID: "ws-1",
		Channel:     ChannelSMS,
		ContactIDs:  ids,
		Template:    Template{Body: "Hello {name}, you owe {debt_amount}."},
	}
}

/* ===================== VALIDATION ===================== */

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"no contacts", Request{WorkspaceID: "ws", Channel: ChannelSMS, Template: Template{Body: "x"}}, ErrNoContacts},
		{"bad channel", Request{WorkspaceID: "ws", Channel: "fax", ContactIDs: []string{"c1"}}, ErrInvalidChannel},
		{"voice without agent", Request{WorkspaceID: "ws", Channel: ChannelVoice, ContactIDs: []string{"c1"}}, ErrAgentRequired},
		{"email without subject", Request{WorkspaceID: "ws", Channel: ChannelEmail, ContactIDs: []string{"c1"}, Template: Template{Body: "x"}}, ErrEmptySubject},
		{"whatsapp empty body", Request{WorkspaceID: "ws", Channel: ChannelWhatsApp, ContactIDs: []string{"c1"}}, ErrEmptyTemplate},
		{"sms too long", Request{WorkspaceID: "ws", Channel: ChannelSMS, ContactIDs: []string{"c1"}, Template: Template{Body: longBody(161)}}, ErrSMSTooLong},
	}
	for _, tc := range cases {
		if err := tc.req.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// boundary: exactly 160 characters is allowed
	ok := Request{WorkspaceID: "ws", Channel: ChannelSMS, ContactIDs: []string{"c1"}, Template: Template{Body: longBody(160)}}
	if err := ok.Validate(); err != nil {
		t.Errorf("160-char sms should validate, got %v", err)
	}

	// the cap counts characters, not bytes
	swahili := strings.Repeat("ŵ", 160)
	multiOK := Request{WorkspaceID: "ws", Channel: ChannelSMS, ContactIDs: []string{"c1"}, Template: Template{Body: swahili}}
	if err := multiOK.Validate(); err != nil {
		t.Errorf("160 multibyte chars should validate, got %v", err)
	}
	multiLong := Request{WorkspaceID: "ws", Channel: ChannelSMS, ContactIDs: []string{"c1"}, Template: Template{Body: swahili + "ŵ"}}
	if err := multiLong.Validate(); !errors.Is(err, ErrSMSTooLong) {
		t.Errorf("161 multibyte chars: got %v, want ErrSMSTooLong", err)
	}

	if ErrAgentRequired.Error() != "Please select an AI agent" {
		t.Errorf("agent validation message changed: %q", ErrAgentRequired.Error())
	}
}

func longBody(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

/* ===================== LOOP SEMANTICS ===================== */

func TestRunCompletesAllItemsInOrder(t *testing.T) {
	d := &fakeDispatcher{}
	m := newTestManager(t, d)

	snap, err := m.Start(context.Background(), smsRequest("c1", "c2", "c3"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.Total != 3 || snap.State != StateRunning {
		t.Fatalf("start snapshot: %+v", snap)
	}

	run, _ := m.Active("ws-1")
	waitDone(t, run)

	final := run.Snapshot()
	if final.State != StateCompleted {
		t.Fatalf("state = %s", final.State)
	}
	if final.Progress != 100 {
		t.Fatalf("progress = %v", final.Progress)
	}
	terminal := 0
	for _, it := range final.Items {
		if it.Status.Terminal() {
			terminal++
		}
	}
	if terminal != 3 {
		t.Fatalf("terminal items = %d, want 3", terminal)
	}

	got := d.dispatched()
	want := []string{"c1", "c2", "c3"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("dispatch order = %v, want %v", got, want)
	}
}

func TestRunContinuesPastItemFailure(t *testing.T) {
	d := &fakeDispatcher{failFor: map[string]bool{"c2": true}}
	m := newTestManager(t, d)

	if _, err := m.Start(context.Background(), smsRequest("c1", "c2", "c3")); err != nil {
		t.Fatalf("start: %v", err)
	}
	run, _ := m.Active("ws-1")
	waitDone(t, run)

	snap := run.Snapshot()
	if snap.Items[0].Status != ItemStatusDelivered {
		t.Fatalf("item 0: %+v", snap.Items[0])
	}
	if snap.Items[1].Status != ItemStatusFailed || snap.Items[1].Error == "" {
		t.Fatalf("item 1 should be failed with reason: %+v", snap.Items[1])
	}
	if snap.Items[2].Status != ItemStatusDelivered {
		t.Fatalf("item 2 should still be dispatched: %+v", snap.Items[2])
	}

	sum := run.Summary()
	if sum.ByStatus[ItemStatusFailed] != 1 || sum.ByStatus[ItemStatusDelivered] != 2 {
		t.Fatalf("summary: %+v", sum.ByStatus)
	}
	if sum.ByOutcome[OutcomeDelivered] != 2 || sum.ByOutcome[OutcomeFailed] != 1 {
		t.Fatalf("summary outcomes: %+v", sum.ByOutcome)
	}
}

func TestStopLeavesUnprocessedItemsPending(t *testing.T) {
	d := &fakeDispatcher{
		blockOn: "c2",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestManager(t, d)

	if _, err := m.Start(context.Background(), smsRequest("c1", "c2", "c3")); err != nil {
		t.Fatalf("start: %v", err)
	}
	run, _ := m.Active("ws-1")

	<-d.entered // item c2 is mid-dispatch
	if err := m.Stop("ws-1"); err != nil {
		t.Fatalf("stop: %v", err)
	}
	close(d.release) // let the in-flight item finish

	waitDone(t, run)

	snap := run.Snapshot()
	if snap.State != StateStopped {
		t.Fatalf("state = %s", snap.State)
	}
	if !snap.Items[0].Status.Terminal() || !snap.Items[1].Status.Terminal() {
		t.Fatalf("processed items must stay terminal: %+v", snap.Items[:2])
	}
	if snap.Items[2].Status != ItemStatusPending {
		t.Fatalf("unprocessed item must stay pending, got %s", snap.Items[2].Status)
	}
	if got := d.dispatched(); len(got) != 2 {
		t.Fatalf("c3 must not be dispatched after stop, dispatched: %v", got)
	}
}

func TestPauseHoldsLoopUntilResume(t *testing.T) {
	d := &fakeDispatcher{
		blockOn: "c1",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestManager(t, d)

	if _, err := m.Start(context.Background(), smsRequest("c1", "c2")); err != nil {
		t.Fatalf("start: %v", err)
	}
	run, _ := m.Active("ws-1")

	<-d.entered
	if err := m.Pause("ws-1"); err != nil {
		t.Fatalf("pause: %v", err)
	}
	close(d.release) // current item finishes even while paused

	// Give the loop several pause polls; c2 must not start.
	time.Sleep(50 * time.Millisecond)
	if got := d.dispatched(); len(got) != 1 {
		t.Fatalf("paused loop advanced: dispatched %v", got)
	}
	if run.Snapshot().State != StatePaused {
		t.Fatalf("state = %s", run.Snapshot().State)
	}

	if err := m.Resume("ws-1"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	waitDone(t, run)

	if run.Snapshot().State != StateCompleted {
		t.Fatalf("state after resume = %s", run.Snapshot().State)
	}
}

func TestOneActiveCampaignPerWorkspace(t *testing.T) {
	d := &fakeDispatcher{
		blockOn: "c1",
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestManager(t, d)

	if _, err := m.Start(context.Background(), smsRequest("c1")); err != nil {
		t.Fatalf("first start: %v", err)
	}
	<-d.entered

	if _, err := m.Start(context.Background(), smsRequest("c2")); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("second start: got %v, want ErrAlreadyActive", err)
	}

	run, _ := m.Active("ws-1")
	close(d.release)
	waitDone(t, run)

	// Slot released after the run ends; a new campaign may start.
	if _, err := m.Start(context.Background(), smsRequest("c2")); err != nil {
		t.Fatalf("start after completion: %v", err)
	}
}

func TestContactLookupFailureFailsOnlyThatItem(t *testing.T) {
	d := &fakeDispatcher{}
	m := newTestManager(t, d)

	if _, err := m.Start(context.Background(), smsRequest("c1", "ghost", "c3")); err != nil {
		t.Fatalf("start: %v", err)
	}
	run, _ := m.Active("ws-1")
	waitDone(t, run)

	snap := run.Snapshot()
	if snap.Items[1].Status != ItemStatusFailed {
		t.Fatalf("missing contact should fail the item: %+v", snap.Items[1])
	}
	if snap.Items[0].Status != ItemStatusDelivered || snap.Items[2].Status != ItemStatusDelivered {
		t.Fatalf("other items should proceed: %+v", snap.Items)
	}
}
