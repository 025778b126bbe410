package httpapi

import (
	"errors"
	"net/http"

	"sautiai-dashboard/internal/audit"
	"sautiai-dashboard/internal/auth"
	"sautiai-dashboard/internal/campaign"
	"sautiai-dashboard/internal/credits"
	"sautiai-dashboard/internal/livecall"
	"sautiai-dashboard/internal/playground"
	"sautiai-dashboard/internal/prefs"
	"sautiai-dashboard/internal/pricing"
	"sautiai-dashboard/internal/rbac"
	"sautiai-dashboard/internal/reporting"
	"sautiai-dashboard/internal/scheduler"
	"sautiai-dashboard/internal/upstream"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Sessions   *auth.SessionService
	Upstream   *upstream.Client
	Campaigns  *campaign.Manager
	Credits    *credits.Service
	Pricing    *pricing.Service
	Scheduler  *scheduler.Service
	Prefs      *prefs.Service
	Reporting  *reporting.Service
	Audit      *audit.Service
	LiveCalls  *livecall.WSHandler
	Playground *playground.WSHandler
}

// identity pulls the verified identity out of request context. The workspace
// a request can touch comes from its token claims, never from client input.
func identity(c *gin.Context) (userID, workspaceID, role string, ok bool) {
	ctx := c.Request.Context()
	workspaceID, err := auth.WorkspaceID(ctx)
	if err != nil || workspaceID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return "", "", "", false
	}
	userID, _ = auth.UserID(ctx)
	role, _ = auth.Role(ctx)
	return userID, workspaceID, role, true
}

// writeError maps service sentinels onto HTTP statuses. The error text goes
// to the client verbatim so the dashboard can surface it directly.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, campaign.ErrAlreadyActive):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, campaign.ErrNoActive),
		errors.Is(err, upstream.ErrNotFound),
		errors.Is(err, scheduler.ErrNotFound),
		errors.Is(err, pricing.ErrPricingNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, credits.ErrInsufficientCredits):
		c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, upstream.ErrUnreachable):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, upstream.ErrUnauthorized):
		// The dashboard's own upstream credential failed; the caller cannot fix it.
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "upstream authorization failed"})
	case errors.Is(err, campaign.ErrAgentRequired),
		errors.Is(err, campaign.ErrNoContacts),
		errors.Is(err, campaign.ErrInvalidChannel),
		errors.Is(err, campaign.ErrEmptyTemplate),
		errors.Is(err, campaign.ErrEmptySubject),
		errors.Is(err, campaign.ErrSMSTooLong),
		errors.Is(err, scheduler.ErrInvalidArgument),
		errors.Is(err, prefs.ErrInvalidArgument),
		errors.Is(err, credits.ErrInvalidArgument),
		errors.Is(err, reporting.ErrInvalidRequest),
		errors.Is(err, pricing.ErrInvalidPricingReq):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Convenience middleware bundles.

func RequireWorkspaceAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireWorkspace(), rbac.RequireAnyRole(roles...)}
}
