package playground

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// SessionConfig is what the voice-testing backend needs to open a stream.
type SessionConfig struct {
	SessionID string
	Voice     string
	AgentID   string
}

// Backend opens streams against the voice-testing service.
type Backend interface {
	Start(ctx context.Context, cfg SessionConfig) (BackendStream, error)
}

// BackendStream is one live conversation with the voice backend.
//
// Close must release every resource the stream holds (the socket and any
// server-side recording state) and must be safe to call more than once.
type BackendStream interface {
	SendAudio(data []byte) error
	SendText(text string) error
	Events() <-chan Event
	Close() error
}

// Session relays one dashboard client through the voice backend. It owns the
// stream lifecycle: whatever path the session exits through, the backend
// stream is closed so nothing keeps capturing.
type Session struct {
	backend Backend
	send    func(Event) error
	log     *slog.Logger

	mu     sync.Mutex
	id     string
	stream BackendStream
	closed bool
}

func NewSession(backend Backend, send func(Event) error, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{backend: backend, send: send, log: log}
}

var (
	errAlreadyStarted = errors.New("playground: session already started")
	errNotStarted     = errors.New("playground: session not started")
)

// HandleClientEvent processes one client frame. Protocol errors are reported
// back to the client as error events, not fatal disconnects.
func (s *Session) HandleClientEvent(ctx context.Context, ev Event) {
	var err error
	switch ev.Type {
	case EventStartSession:
		err = s.start(ctx, ev)
	case EventStopSession:
		s.Close()
	case EventAudioInput, EventAudioData:
		err = s.forwardAudio(ev)
	case EventTextInput:
		err = s.forwardText(ev)
	default:
		err = errors.New("playground: unknown event type " + ev.Type)
	}

	if err != nil {
		_ = s.send(errorEvent(err.Error()))
	}
}

func (s *Session) start(ctx context.Context, ev Event) error {
	s.mu.Lock()
	if s.stream != nil {
		s.mu.Unlock()
		return errAlreadyStarted
	}
	if s.closed {
		s.mu.Unlock()
		return errors.New("playground: session is closed")
	}
	id := uuid.NewString()
	s.id = id
	s.mu.Unlock()

	stream, err := s.backend.Start(ctx, SessionConfig{
		SessionID: id,
		Voice:     BackendVoice(ev.VoiceID),
		AgentID:   ev.AgentID,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		// Client vanished while the backend dialed; do not leak the stream.
		s.mu.Unlock()
		_ = stream.Close()
		return nil
	}
	s.stream = stream
	s.mu.Unlock()

	go s.pump(stream)
	return nil
}

// pump forwards backend events to the client until the stream ends.
func (s *Session) pump(stream BackendStream) {
	for ev := range stream.Events() {
		ev.SessionID = s.sessionID()
		if err := s.send(ev); err != nil {
			s.Close()
			return
		}
	}
}

func (s *Session) forwardAudio(ev Event) error {
	stream := s.currentStream()
	if stream == nil {
		return errNotStarted
	}
	data, err := base64.StdEncoding.DecodeString(ev.Audio)
	if err != nil {
		return errors.New("playground: audio payload is not valid base64")
	}
	if len(data) == 0 {
		return errors.New("playground: empty audio payload")
	}
	return stream.SendAudio(data)
}

func (s *Session) forwardText(ev Event) error {
	stream := s.currentStream()
	if stream == nil {
		return errNotStarted
	}
	if ev.Text == "" {
		return errors.New("playground: empty text payload")
	}
	return stream.SendText(ev.Text)
}

// Close tears the session down: idempotent, closes the backend stream on
// every exit path (client stop, socket drop, handler error).
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stream := s.stream
	s.stream = nil
	s.mu.Unlock()

	if stream != nil {
		if err := stream.Close(); err != nil {
			s.log.Warn("playground stream close failed", "session_id", s.sessionID(), "err", err)
		}
	}
}

func (s *Session) currentStream() BackendStream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream
}

func (s *Session) sessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}
