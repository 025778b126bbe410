package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"sautiai-dashboard/internal/config"
	"sautiai-dashboard/internal/upstream"
)

type fakeAccounts struct {
	account  upstream.Account
	loginErr error
	meErr    error
}

func (f fakeAccounts) Login(ctx context.Context, email, password string) (upstream.Account, error) {
	if f.loginErr != nil {
		return upstream.Account{}, f.loginErr
	}
	return f.account, nil
}

func (f fakeAccounts) Register(ctx context.Context, name, email, password string) (upstream.Account, error) {
	return f.account, nil
}

func (f fakeAccounts) Me(ctx context.Context, workspaceID, userID string) (upstream.Account, error) {
	if f.meErr != nil {
		return upstream.Account{}, f.meErr
	}
	return f.account, nil
}

func testTokenManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestSessionService_LoginMintsLocalTokens(t *testing.T) {
	acct := upstream.Account{UserID: "u-1", WorkspaceID: "ws-1", Email: "a@b.co", Role: "manager"}
	svc := NewSessionService(fakeAccounts{account: acct}, testTokenManager(t))

	sess, err := svc.Login(context.Background(), "a@b.co", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Tokens.AccessToken == "" || sess.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	claims, err := svc.tokens.Verify(sess.Tokens.AccessToken, TokenTypeAccess, time.Now())
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.WorkspaceID != "ws-1" || claims.Role != "manager" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestSessionService_LoginMapsUnauthorized(t *testing.T) {
	svc := NewSessionService(fakeAccounts{loginErr: upstream.ErrUnauthorized}, testTokenManager(t))

	if _, err := svc.Login(context.Background(), "a@b.co", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionService_RefreshReReadsRole(t *testing.T) {
	accounts := &fakeAccounts{account: upstream.Account{UserID: "u-1", WorkspaceID: "ws-1", Role: "agent"}}
	svc := NewSessionService(accounts, testTokenManager(t))

	sess, err := svc.Login(context.Background(), "a@b.co", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// Role changed upstream between login and refresh.
	accounts.account.Role = "manager"

	next, err := svc.Refresh(context.Background(), sess.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := svc.tokens.Verify(next.Tokens.AccessToken, TokenTypeAccess, time.Now())
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != "manager" {
		t.Fatalf("role = %q, want refreshed role manager", claims.Role)
	}
}

func TestSessionService_RefreshRejectsAccessToken(t *testing.T) {
	svc := NewSessionService(fakeAccounts{account: upstream.Account{UserID: "u", WorkspaceID: "w", Role: "agent"}}, testTokenManager(t))

	sess, err := svc.Login(context.Background(), "a@b.co", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), sess.Tokens.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
