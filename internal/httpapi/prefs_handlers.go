package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type setDefaultAgentRequest struct {
	AgentID string `json:"agent_id"`
}

func (h Handlers) GetDefaultAgent(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	agentID, found, err := h.Prefs.DefaultAgent(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent_id": agentID, "set": found})
}

func (h Handlers) SetDefaultAgent(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	var req setDefaultAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// Reject ids the workspace does not own before persisting.
	if _, err := h.Upstream.GetAgent(c.Request.Context(), workspaceID, req.AgentID); err != nil {
		writeError(c, err)
		return
	}
	if err := h.Prefs.SetDefaultAgent(c.Request.Context(), workspaceID, req.AgentID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent_id": req.AgentID, "set": true})
}

func (h Handlers) ClearDefaultAgent(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Prefs.ClearDefaultAgent(c.Request.Context(), workspaceID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
