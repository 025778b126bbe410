package credits

import (
	"context"
	"net/http"

	"sautiai-dashboard/internal/auth"
	"sautiai-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

// BalanceService is the minimal credits surface needed by middleware.
type BalanceService interface {
	GetBalance(ctx context.Context, workspaceID string) (Balance, error)
}

// RequireCredits blocks message-campaign requests when the workspace has no
// credits left. The per-item charge still happens inside the dispatcher; this
// only catches the obviously-empty case before a campaign starts.
//
// super_admin bypasses, so support can run recovery sends on a drained
// workspace.
func RequireCredits(svc BalanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := auth.Role(c.Request.Context())
		if rbac.IsSuperAdmin(role) {
			c.Next()
			return
		}

		workspaceID, err := auth.WorkspaceID(c.Request.Context())
		if err != nil || workspaceID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
			return
		}

		bal, err := svc.GetBalance(c.Request.Context(), workspaceID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "balance lookup failed"})
			return
		}
		if bal.Credits < MessageCost {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{"error": "insufficient credits"})
			return
		}

		c.Next()
	}
}
