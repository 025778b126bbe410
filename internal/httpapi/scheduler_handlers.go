package httpapi

import (
	"context"
	"net/http"
	"time"

	"sautiai-dashboard/internal/scheduler"

	"github.com/gin-gonic/gin"
)

func (h Handlers) CreateScheduledCall(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var req scheduler.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sc, err := h.Scheduler.Create(c.Request.Context(), workspaceID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "scheduled_call", sc.ID, "created", "")
	c.JSON(http.StatusCreated, sc)
}

// ListScheduledCalls serves the calendar. ?view=day|week|month picks the
// range, ?anchor=2006-01-02 picks which one; both default to the current month.
func (h Handlers) ListScheduledCalls(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}

	var anchor time.Time
	if raw := c.Query("anchor"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "anchor must be YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	out, err := h.Scheduler.ListView(c.Request.Context(), workspaceID, c.Query("view"), anchor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

func (h Handlers) UpdateScheduledCall(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var req scheduler.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sc, err := h.Scheduler.Update(c.Request.Context(), workspaceID, c.Param("schedule_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "scheduled_call", sc.ID, "updated", "")
	c.JSON(http.StatusOK, sc)
}

func (h Handlers) DeleteScheduledCall(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	id := c.Param("schedule_id")
	if err := h.Scheduler.Delete(c.Request.Context(), workspaceID, id); err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "scheduled_call", id, "deleted", "")
	c.Status(http.StatusNoContent)
}

func (h Handlers) CancelScheduledCall(c *gin.Context) {
	h.scheduledCallTransition(c, "canceled", h.Scheduler.Cancel)
}

func (h Handlers) CompleteScheduledCall(c *gin.Context) {
	h.scheduledCallTransition(c, "completed", h.Scheduler.Complete)
}

func (h Handlers) scheduledCallTransition(c *gin.Context, action string, fn func(ctx context.Context, workspaceID, id string) (scheduler.ScheduledCall, error)) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	sc, err := fn(c.Request.Context(), workspaceID, c.Param("schedule_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "scheduled_call", sc.ID, action, "")
	c.JSON(http.StatusOK, sc)
}
