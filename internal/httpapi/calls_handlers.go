package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListCalls(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Upstream.ListCalls(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

func (h Handlers) GetCall(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	call, err := h.Upstream.GetCallStatus(c.Request.Context(), workspaceID, c.Param("call_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, call)
}

// GetCallTranscript returns the final classified transcript. A call that has
// no transcript yet yields an empty list, not an error.
func (h Handlers) GetCallTranscript(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	lines, err := h.Upstream.GetTranscript(c.Request.Context(), workspaceID, c.Param("call_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call_id": c.Param("call_id"), "lines": lines})
}

func (h Handlers) SummarizeCall(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	summary, err := h.Upstream.SummarizeCall(c.Request.Context(), workspaceID, c.Param("call_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"call_id": c.Param("call_id"), "summary": summary})
}

// WatchCall upgrades to a websocket and streams live transcript updates.
func (h Handlers) WatchCall(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	h.LiveCalls.Serve(c, workspaceID, c.Param("call_id"))
}

func (h Handlers) DashboardSummary(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Upstream.GetDashboardSummary(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) ActiveCalls(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Upstream.ListActiveCalls(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}
