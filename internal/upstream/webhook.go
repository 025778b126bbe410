package upstream

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"sautiai-dashboard/internal/calls"

	"github.com/gin-gonic/gin"
)

// CallStatusEvent is the callback the core API posts whenever a call changes
// status. The dashboard uses it to feed live views without re-polling.
type CallStatusEvent struct {
	WorkspaceID string            `json:"workspace_id"`
	CallID      string            `json:"call_id"`
	Status      calls.CallStatus  `json:"status"`
	Outcome     calls.CallOutcome `json:"outcome,omitempty"`
	Duration    int               `json:"duration,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// CallStatusSink receives verified status events. Implemented by the live
// call hub; kept as an interface so webhook code stays free of UI concerns.
type CallStatusSink interface {
	CallStatusChanged(ctx context.Context, ev CallStatusEvent)
}

// CallStatusWebhookHandler verifies and dispatches core-API status callbacks.
//
// NOTE: signature verification uses an HMAC-SHA256 of the raw body with the
// shared webhook secret, carried in X-Sautiai-Signature (hex). An empty
// configured secret disables verification (local/dev only; production config
// requires the secret).
type CallStatusWebhookHandler struct {
	Secret string
	Sink   CallStatusSink
}

const signatureHeader = "X-Sautiai-Signature"

func (h CallStatusWebhookHandler) HandleStatusEvent(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if h.Secret != "" && !verifySignature(h.Secret, body, c.GetHeader(signatureHeader)) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad signature"})
		return
	}

	var ev CallStatusEvent
	if err := unmarshalStrict(body, &ev); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if ev.WorkspaceID == "" || ev.CallID == "" || ev.Status == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "workspace_id, call_id and status required"})
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	if h.Sink != nil {
		h.Sink.CallStatusChanged(c.Request.Context(), ev)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func verifySignature(secret string, body []byte, gotHex string) bool {
	if gotHex == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	want := mac.Sum(nil)
	got, err := hex.DecodeString(gotHex)
	if err != nil {
		return false
	}
	return hmac.Equal(want, got)
}
