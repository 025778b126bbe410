package playground

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WSHandler bridges a browser websocket to a playground session. One socket,
// one session; closing either side releases the backend stream.
type WSHandler struct {
	Backend Backend
	Log     *slog.Logger
}

func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("playground upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(ev Event) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(ev)
	}

	sess := NewSession(h.Backend, send, h.Log)
	defer sess.Close()

	ctx := c.Request.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		ev, err := DecodeEvent(data)
		if err != nil {
			_ = send(errorEvent(err.Error()))
			continue
		}
		sess.HandleClientEvent(ctx, ev)
	}
}
