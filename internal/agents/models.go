package agents

import (
	"errors"
	"strings"
	"time"
)

// Agent is a configured AI persona used to conduct collection calls:
// a prompt template, a catalog voice and a handful of tunables.
//
// An agent is "configured" only when its VoiceID resolves in the voice catalog;
// unconfigured agents must not be offered for voice campaigns.
type Agent struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`

	Name           string  `json:"name"`
	PromptTemplate string  `json:"prompt_template"`
	VoiceID        string  `json:"voice_id"`
	IsActive       bool    `json:"is_active"`
	Temperature    float64 `json:"temperature"`
	SpeakingRate   float64 `json:"speaking_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var ErrInvalidAgent = errors.New("agents: invalid agent")

func (a Agent) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("agents: name is required")
	}
	if strings.TrimSpace(a.PromptTemplate) == "" {
		return errors.New("agents: prompt_template is required")
	}
	if a.Temperature < 0 || a.Temperature > 2 {
		return errors.New("agents: temperature must be within [0, 2]")
	}
	if a.SpeakingRate != 0 && (a.SpeakingRate < 0.5 || a.SpeakingRate > 2) {
		return errors.New("agents: speaking_rate must be within [0.5, 2]")
	}
	return nil
}

// Configured reports whether the agent can be used for calls given the set of
// known catalog voice ids.
func (a Agent) Configured(knownVoices map[string]bool) bool {
	return a.VoiceID != "" && knownVoices[a.VoiceID]
}
