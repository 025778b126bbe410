package httpapi

import (
	"net/http"
	"strconv"

	"sautiai-dashboard/internal/credits"

	"github.com/gin-gonic/gin"
)

func (h Handlers) GetCreditBalance(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	bal, err := h.Credits.GetBalance(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bal)
}

// GetCreditLedger lists recent ledger entries, newest first. ?limit caps the
// page size.
func (h Handlers) GetCreditLedger(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	entries, err := h.Credits.ListLedger(c.Request.Context(), workspaceID, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries, "total": len(entries)})
}

func (h Handlers) TopUpCredits(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var req credits.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	entry, bal, err := h.Credits.TopUp(c.Request.Context(), workspaceID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "credit_ledger", entry.ID, "topup", "")
	c.JSON(http.StatusOK, gin.H{"entry": entry, "balance": bal})
}

// AdminManualCredit grants credits outside a purchase.
// RBAC: owner or super_admin.
func (h Handlers) AdminManualCredit(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var req credits.AdminCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	action, _, bal, err := h.Credits.AdminManualCredit(c.Request.Context(), workspaceID, userID, role, req)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogAdminAction(c.Request.Context(), workspaceID, userID, role, c.ClientIP(), "manual credit: "+req.Reason, "")
	c.JSON(http.StatusOK, gin.H{"action": action, "balance": bal})
}
