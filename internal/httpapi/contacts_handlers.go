package httpapi

import (
	"net/http"

	"sautiai-dashboard/internal/contacts"

	"github.com/gin-gonic/gin"
)

// contactView decorates a contact with the display fields the dashboard
// renders: the formatted debt amount and the uppercase status badge.
type contactView struct {
	contacts.Contact
	DebtDisplay string `json:"debt_display"`
	StatusBadge string `json:"status_badge"`
}

func viewContact(ct contacts.Contact) contactView {
	return contactView{
		Contact:     ct,
		DebtDisplay: contacts.FormatDebtAmount(ct.DebtAmount),
		StatusBadge: ct.StatusBadge(),
	}
}

func (h Handlers) ListContacts(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}

	all, err := h.Upstream.ListContacts(c.Request.Context(), workspaceID)
	if err != nil {
		writeError(c, err)
		return
	}

	filter := contacts.Filter{
		Query:  c.Query("q"),
		Status: contacts.PaymentStatus(c.Query("status")),
	}
	filtered := filter.Apply(all)

	out := make([]contactView, 0, len(filtered))
	for _, ct := range filtered {
		out = append(out, viewContact(ct))
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": len(out)})
}

func (h Handlers) GetContact(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	ct, err := h.Upstream.GetContact(c.Request.Context(), workspaceID, c.Param("contact_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewContact(ct))
}

func (h Handlers) CreateContact(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var in contacts.Contact
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in.WorkspaceID = workspaceID
	if err := in.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.Upstream.CreateContact(c.Request.Context(), workspaceID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "contact", ct.ID, "created", "")
	c.JSON(http.StatusCreated, viewContact(ct))
}

func (h Handlers) UpdateContact(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	var in contacts.Contact
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in.ID = c.Param("contact_id")
	in.WorkspaceID = workspaceID
	if err := in.Validate(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ct, err := h.Upstream.UpdateContact(c.Request.Context(), workspaceID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "contact", ct.ID, "updated", "")
	c.JSON(http.StatusOK, viewContact(ct))
}

func (h Handlers) DeleteContact(c *gin.Context) {
	userID, workspaceID, role, ok := identity(c)
	if !ok {
		return
	}
	contactID := c.Param("contact_id")
	if err := h.Upstream.DeleteContact(c.Request.Context(), workspaceID, contactID); err != nil {
		writeError(c, err)
		return
	}
	_ = h.Audit.LogEntityMutation(c.Request.Context(), workspaceID, userID, role, "contact", contactID, "deleted", "")
	c.Status(http.StatusNoContent)
}
