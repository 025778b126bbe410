package credits

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sautiai-dashboard/internal/auth"
	"sautiai-dashboard/internal/rbac"

	"github.com/gin-gonic/gin"
)

type fakeBalanceService struct {
	bal Balance
	err error
}

func (f fakeBalanceService) GetBalance(ctx context.Context, workspaceID string) (Balance, error) {
	return f.bal, f.err
}

func creditsRouter(svc BalanceService, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/campaigns", func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", "ws", role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, RequireCredits(svc), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireCredits_BlocksEmptyBalance(t *testing.T) {
	r := creditsRouter(fakeBalanceService{bal: Balance{WorkspaceID: "ws", Credits: 0}}, rbac.RoleManager)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/campaigns", nil))

	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
}

func TestRequireCredits_AllowsPositiveBalance(t *testing.T) {
	r := creditsRouter(fakeBalanceService{bal: Balance{WorkspaceID: "ws", Credits: 3}}, rbac.RoleManager)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/campaigns", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireCredits_AllowsSuperAdminOverride(t *testing.T) {
	r := creditsRouter(fakeBalanceService{bal: Balance{WorkspaceID: "ws", Credits: 0}}, rbac.RoleSuperAdmin)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/campaigns", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
