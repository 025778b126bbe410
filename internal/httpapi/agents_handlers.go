package httpapi

import (
	"net/http"

	"sautiai-dashboard/internal/agents"
	"sautiai-dashboard/internal/voices"

	"github.com/gin-gonic/gin"
)

func (h Handlers) ListAgents(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}

	var (
		out []agents.Agent
		err error
	)
	// ?available=true narrows to agents that can take voice calls right now.
	if c.Query("available") == "true" {
		out, err = h.Upstream.ListAgentsAvailableForCalls(c.Request.Context(), workspaceID)
	} else {
		out, err = h.Upstream.ListAgents(c.Request.Context(), workspaceID)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

func (h Handlers) GetAgent(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	ag, err := h.Upstream.GetAgent(c.Request.Context(), workspaceID, c.Param("agent_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ag)
}

// checkAgentVoice enforces that a selected voice_id resolves in the voice
// catalog. An empty voice_id is a legal unconfigured agent; it just cannot
// take voice campaigns until a voice is picked.
func (h Handlers) checkAgentVoice(c *gin.Context, in agents.Agent) bool {
	if in.VoiceID == "" {
		return true
	}
	all, err := h.Upstream.ListVoices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return false
	}
	if !in.Configured(voices.NewCatalog(all).KnownIDs()) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "voice_id does not resolve to a catalog voice"})
		return false
	}
	return true
}

func (h Handlers) CreateAgent(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var in agents.Agent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in.WorkspaceID = workspaceID
	if err := in.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkAgentVoice(c, in) {
		return
	}

	ag, err := h.Upstream.CreateAgent(c.Request.Context(), workspaceID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "agent", ag.ID, "created", "")
	c.JSON(http.StatusCreated, ag)
}

func (h Handlers) UpdateAgent(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var in agents.Agent
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in.ID = c.Param("agent_id")
	in.WorkspaceID = workspaceID
	if err := in.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.checkAgentVoice(c, in) {
		return
	}

	ag, err := h.Upstream.UpdateAgent(c.Request.Context(), workspaceID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "agent", ag.ID, "updated", "")
	c.JSON(http.StatusOK, ag)
}

func (h Handlers) DeleteAgent(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	agentID := c.Param("agent_id")
	if err := h.Upstream.DeleteAgent(c.Request.Context(), workspaceID, agentID); err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "agent", agentID, "deleted", "")
	c.Status(http.StatusNoContent)
}

// ListVoices returns the voice catalog, optionally narrowed by language
// prefix (?language=en).
func (h Handlers) ListVoices(c *gin.Context) {
	if _, _, _, ok := identity(c); !ok {
		return
	}
	all, err := h.Upstream.ListVoices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if lang := c.Query("language"); lang != "" {
		all = voices.NewCatalog(all).FilterByLanguage(lang)
	}
	c.JSON(http.StatusOK, gin.H{"items": all, "total": len(all)})
}
