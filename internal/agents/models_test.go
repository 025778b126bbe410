package agents

import "testing"

func TestValidate(t *testing.T) {
	a := Agent{Name: "Aria", PromptTemplate: "You are a polite collections agent.", Temperature: 0.7, SpeakingRate: 1.0}
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid agent, got %v", err)
	}

	bad := a
	bad.Name = ""
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for missing name")
	}

	bad = a
	bad.Temperature = 3
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for temperature out of range")
	}

	bad = a
	bad.SpeakingRate = 0.1
	if err := bad.Validate(); err == nil {
		t.Errorf("expected error for speaking_rate out of range")
	}
}

func TestConfigured(t *testing.T) {
	known := map[string]bool{"voice-aria": true}

	a := Agent{VoiceID: "voice-aria"}
	if !a.Configured(known) {
		t.Fatalf("expected configured")
	}
	if (Agent{VoiceID: "voice-ghost"}).Configured(known) {
		t.Fatalf("unknown voice must not count as configured")
	}
	if (Agent{}).Configured(known) {
		t.Fatalf("empty voice must not count as configured")
	}
}
