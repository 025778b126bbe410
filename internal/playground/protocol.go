package playground

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event is the single frame shape on the playground socket, both directions.
// Client-sent types: start_voice_session, stop_voice_session, audio_input,
// audio_data, text_input. Server-sent types: speech_detected, user_speech,
// ai_response_text, audio_playing, response_complete, error.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`

	// VoiceID is the catalog voice id on start_voice_session.
	VoiceID string `json:"voice_id,omitempty"`
	AgentID string `json:"agent_id,omitempty"`

	// Audio is base64-encoded audio payload (audio_input/audio_data and
	// server audio frames).
	Audio string `json:"audio,omitempty"`

	// Text carries transcribed or typed text.
	Text string `json:"text,omitempty"`

	// Message is the human-readable error detail on type=error.
	Message string `json:"message,omitempty"`
}

const (
	EventStartSession = "start_voice_session"
	EventStopSession  = "stop_voice_session"
	EventAudioInput   = "audio_input"
	EventAudioData    = "audio_data"
	EventTextInput    = "text_input"

	EventSpeechDetected   = "speech_detected"
	EventUserSpeech       = "user_speech"
	EventAIResponseText   = "ai_response_text"
	EventAudioPlaying     = "audio_playing"
	EventResponseComplete = "response_complete"
	EventError            = "error"
)

// DecodeEvent parses a client frame and rejects frames without a type.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("playground: invalid frame: %w", err)
	}
	if strings.TrimSpace(ev.Type) == "" {
		return Event{}, fmt.Errorf("playground: frame missing type")
	}
	return ev, nil
}

func errorEvent(msg string) Event {
	return Event{Type: EventError, Message: msg}
}
