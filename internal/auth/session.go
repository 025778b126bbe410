package auth

import (
	"context"
	"errors"
	"time"

	"sautiai-dashboard/internal/upstream"
)

// Accounts is the upstream surface the session service needs.
type Accounts interface {
	Login(ctx context.Context, email, password string) (upstream.Account, error)
	Register(ctx context.Context, name, email, password string) (upstream.Account, error)
	Me(ctx context.Context, workspaceID, userID string) (upstream.Account, error)
}

// SessionService verifies credentials against the core API and mints this
// service's own token pair. Upstream credentials and tokens never reach the
// browser; the workspace a session can touch comes from its verified claims
// only.
type SessionService struct {
	accounts Accounts
	tokens   *Manager
	clock    func() time.Time
}

func NewSessionService(accounts Accounts, tokens *Manager) *SessionService {
	return &SessionService{accounts: accounts, tokens: tokens, clock: time.Now}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

type Session struct {
	Account upstream.Account
	Tokens  TokenPair
}

func (s *SessionService) Login(ctx context.Context, email, password string) (Session, error) {
	acct, err := s.accounts.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return s.mint(acct)
}

func (s *SessionService) Register(ctx context.Context, name, email, password string) (Session, error) {
	acct, err := s.accounts.Register(ctx, name, email, password)
	if err != nil {
		return Session{}, err
	}
	return s.mint(acct)
}

// Refresh exchanges a valid refresh token for a fresh pair. The role is
// re-read from the core API so a role change upstream takes effect at the
// next refresh, not at the next login.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh, s.clock())
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	acct, err := s.accounts.Me(ctx, claims.WorkspaceID, claims.UserID)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return s.mint(acct)
}

func (s *SessionService) mint(acct upstream.Account) (Session, error) {
	if acct.UserID == "" || acct.WorkspaceID == "" {
		return Session{}, errors.New("auth: upstream account missing identifiers")
	}
	pair, err := s.tokens.IssuePair(s.clock(), acct.UserID, acct.WorkspaceID, acct.Role)
	if err != nil {
		return Session{}, err
	}
	return Session{Account: acct, Tokens: pair}, nil
}
