package playground

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSBackend dials the voice-testing service over websocket. Dial attempts
// are bounded with capped backoff; mid-session reconnection stays
// user-triggered (the client starts a new session) rather than silent.
type WSBackend struct {
	URL    string
	Dialer *websocket.Dialer
	Log    *slog.Logger

	MaxDialAttempts int
	DialBackoff     time.Duration
}

func NewWSBackend(url string, log *slog.Logger) *WSBackend {
	return &WSBackend{
		URL:             url,
		Dialer:          &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		Log:             log,
		MaxDialAttempts: 5,
		DialBackoff:     500 * time.Millisecond,
	}
}

func (b *WSBackend) Start(ctx context.Context, cfg SessionConfig) (BackendStream, error) {
	attempts := b.MaxDialAttempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := b.DialBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	var conn *websocket.Conn
	var err error
	for i := 0; i < attempts; i++ {
		conn, _, err = b.Dialer.DialContext(ctx, b.URL, nil)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		// Capped exponential backoff.
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
	if err != nil {
		return nil, err
	}

	start := Event{
		Type:      EventStartSession,
		SessionID: cfg.SessionID,
		VoiceID:   cfg.Voice,
		AgentID:   cfg.AgentID,
	}
	if err := conn.WriteJSON(start); err != nil {
		_ = conn.Close()
		return nil, err
	}

	st := &wsStream{
		conn:   conn,
		events: make(chan Event, 32),
		done:   make(chan struct{}),
		log:    b.Log,
	}
	go st.readLoop()
	return st, nil
}

type wsStream struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}
	log    *slog.Logger

	writeMu sync.Mutex
	once    sync.Once
}

// readLoop forwards backend events until the socket dies or the stream is
// closed. The send must race Close: if the consumer is gone and the buffer
// is full, a bare send would park this goroutine forever.
func (s *wsStream) readLoop() {
	defer close(s.events)
	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *wsStream) SendAudio(data []byte) error {
	return s.writeJSON(Event{Type: EventAudioInput, Audio: base64.StdEncoding.EncodeToString(data)})
}

func (s *wsStream) SendText(text string) error {
	return s.writeJSON(Event{Type: EventTextInput, Text: text})
}

func (s *wsStream) Events() <-chan Event { return s.events }

// Close sends the stop message and drops the socket. Safe to call twice.
func (s *wsStream) Close() error {
	s.once.Do(func() {
		close(s.done)
		_ = s.writeJSON(Event{Type: EventStopSession})
		_ = s.conn.Close()
	})
	return nil
}

func (s *wsStream) writeJSON(ev Event) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return s.conn.WriteJSON(ev)
}
