package calls

import "testing"

func TestStatusTerminal(t *testing.T) {
	terminal := []CallStatus{CallStatusCompleted, CallStatusFailed, CallStatusNoAnswer, CallStatusBusy, CallStatusCanceled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	live := []CallStatus{CallStatusQueued, CallStatusRinging, CallStatusInProgress}
	for _, s := range live {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestClassifySpeaker(t *testing.T) {
	cases := []struct {
		in   string
		want Speaker
	}{
		{"Agent: Hello, this is Aria from SautiAI.", SpeakerAgent},
		{"AI: Can you confirm your payment date?", SpeakerAgent},
		{"Customer: I can pay on Friday.", SpeakerCustomer},
		{"caller: who is this?", SpeakerCustomer},
		{"unlabeled mumbling", SpeakerCustomer},
	}
	for _, tc := range cases {
		if got := ClassifySpeaker(tc.in); got != tc.want {
			t.Errorf("ClassifySpeaker(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseTranscript(t *testing.T) {
	raw := []string{
		"Agent: Hello, am I speaking with Jane?",
		"",
		"Customer: Yes, speaking.",
		"Agent: This is about your outstanding balance.",
	}
	lines := ParseTranscript(raw)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].Speaker != SpeakerAgent || lines[0].Text != "Hello, am I speaking with Jane?" {
		t.Fatalf("line 0: %+v", lines[0])
	}
	if lines[1].Speaker != SpeakerCustomer {
		t.Fatalf("line 1 speaker: %s", lines[1].Speaker)
	}
	for i, l := range lines {
		if l.Index != i {
			t.Fatalf("line %d has index %d", i, l.Index)
		}
	}
}
