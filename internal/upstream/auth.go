package upstream

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Account is the upstream user record returned by login/register/me.
type Account struct {
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// Login verifies credentials against the core API. The dashboard mints its
// own session tokens afterwards; the upstream token is never handed to
// browsers.
func (c *Client) Login(ctx context.Context, email, password string) (Account, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Account{}, errors.New("upstream: email and password required")
	}
	var out Account
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (Account, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return Account{}, errors.New("upstream: name, email and password required")
	}
	var out Account
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context, workspaceID, userID string) (Account, error) {
	if workspaceID == "" || userID == "" {
		return Account{}, errors.New("upstream: workspace_id and user id required")
	}
	q := workspaceQuery(workspaceID)
	q.Set("user_id", userID)
	var out Account
	if err := c.do(ctx, http.MethodGet, "/auth/me", q, nil, &out); err != nil {
		return Account{}, err
	}
	return out, nil
}
