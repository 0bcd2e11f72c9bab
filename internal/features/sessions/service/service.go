package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/sessions/domain"
	"ticket-sales/internal/features/sessions/ports"
)

// SessionServiceImpl implements ports.SessionService.
type SessionServiceImpl struct {
	accounts ports.Accounts
	tokens   ports.Tokens
}

// NewSessionService creates a new SessionServiceImpl.
func NewSessionService(accounts ports.Accounts, tokens ports.Tokens) *SessionServiceImpl {
	return &SessionServiceImpl{
		accounts: accounts,
		tokens:   tokens,
	}
}

// Login checks the credentials and issues an access and refresh token.
func (s *SessionServiceImpl) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("missing_credentials").Inc()
		return nil, domain.ErrCredentialsRequired
	}

	user, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, err
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("service: failed to authenticate: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("service: failed to issue tokens: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &domain.LoginResponse{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         *user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. Tokens of
// deleted customers are rejected.
func (s *SessionServiceImpl) Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.RefreshResponse, error) {
	if strings.TrimSpace(req.Refresh) == "" {
		return nil, domain.ErrRefreshRequired
	}

	claims, err := s.tokens.Verify(strings.TrimSpace(req.Refresh), auth.TokenTypeRefresh)
	if err != nil {
		return nil, domain.ErrInvalidRefreshToken
	}

	exists, err := s.accounts.Exists(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up customer: %w", err)
	}
	if !exists {
		return nil, domain.ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccess(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to issue access token: %w", err)
	}
	return &domain.RefreshResponse{Access: access}, nil
}
