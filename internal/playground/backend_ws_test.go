package playground

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// floodBackend upgrades the connection, reads the start event and then
// pushes far more server events than the stream buffer holds.
func floodBackend(t *testing.T, eventCount int) *httptest.Server {
	t.Helper()
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var start Event
		if err := conn.ReadJSON(&start); err != nil {
			return
		}
		for i := 0; i < eventCount; i++ {
			if err := conn.WriteJSON(Event{Type: EventAIResponseText, Text: "chunk"}); err != nil {
				return
			}
		}
		// Hold the socket open so the read loop stays blocked on the
		// channel send, not on a closed connection.
		_, _, _ = conn.ReadMessage()
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSStream_CloseUnblocksReadLoop(t *testing.T) {
	srv := floodBackend(t, 50)
	defer srv.Close()

	b := NewWSBackend(wsURL(srv), slog.Default())
	st, err := b.Start(context.Background(), SessionConfig{SessionID: "s-1", Voice: "zuri"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Never drain: the buffer fills and the read loop blocks mid-send.
	time.Sleep(50 * time.Millisecond)
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The read loop must let go of the buffered channel and close it.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-st.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed after Close")
		}
	}
}

func TestWSStream_BackendCloseEndsEvents(t *testing.T) {
	up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		var start Event
		_ = conn.ReadJSON(&start)
		_ = conn.WriteJSON(Event{Type: EventResponseComplete})
		_ = conn.Close()
	}))
	defer srv.Close()

	b := NewWSBackend(wsURL(srv), slog.Default())
	st, err := b.Start(context.Background(), SessionConfig{SessionID: "s-2", Voice: "zuri"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer st.Close()

	var got []Event
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-st.Events():
			if !ok {
				if len(got) != 1 || got[0].Type != EventResponseComplete {
					t.Fatalf("events = %+v, want one response_complete", got)
				}
				return
			}
			got = append(got, ev)
		case <-deadline:
			t.Fatal("events channel never closed after backend hangup")
		}
	}
}
