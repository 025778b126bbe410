package httpapi

import (
	"net/http"

	"sautiai-dashboard/internal/campaign"

	"github.com/gin-gonic/gin"
)

type startCampaignRequest struct {
	Channel    campaign.Channel  `json:"channel"`
	ContactIDs []string          `json:"contact_ids"`
	AgentID    string            `json:"agent_id,omitempty"`
	Template   campaign.Template `json:"template"`
}

func (h Handlers) StartCampaign(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var req startCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	snap, err := h.Campaigns.Start(c.Request.Context(), campaign.Request{
		WorkspaceID: workspaceID,
		Channel:     req.Channel,
		ContactIDs:  req.ContactIDs,
		AgentID:     req.AgentID,
		Template:    req.Template,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogCampaign(c.Request.Context(), workspaceID, userID, role, snap.ID, "started", "")
	c.JSON(http.StatusCreated, snap)
}

func (h Handlers) CampaignStatus(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	run, err := h.Campaigns.Active(workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run.Snapshot())
}

func (h Handlers) CampaignSummary(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	run, err := h.Campaigns.Active(workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, run.Summary())
}

func (h Handlers) PauseCampaign(c *gin.Context) {
	h.campaignTransition(c, "paused", h.Campaigns.Pause)
}

func (h Handlers) ResumeCampaign(c *gin.Context) {
	h.campaignTransition(c, "resumed", h.Campaigns.Resume)
}

func (h Handlers) StopCampaign(c *gin.Context) {
	h.campaignTransition(c, "stopped", h.Campaigns.Stop)
}

func (h Handlers) campaignTransition(c *gin.Context, name string, fn func(workspaceID string) error) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	if err := fn(workspaceID); err != nil {
		writeError(c, err)
		return
	}

	run, err := h.Campaigns.Active(workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogCampaign(c.Request.Context(), workspaceID, userID, role, run.ID(), name, "")
	c.JSON(http.StatusOK, run.Snapshot())
}
