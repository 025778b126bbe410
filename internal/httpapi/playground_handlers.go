package httpapi

import "github.com/gin-gonic/gin"

// PlaygroundSocket upgrades to a websocket and relays one voice-testing
// session against the backend.
func (h Handlers) PlaygroundSocket(c *gin.Context) {
	if _, _, _, ok := identity(c); !ok {
		return
	}
	h.Playground.Serve(c)
}
