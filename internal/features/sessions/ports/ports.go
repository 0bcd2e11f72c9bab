package ports

import (
	"context"

	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/features/sessions/domain"
)

// SessionService logs customers in and refreshes their access tokens.
type SessionService interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	Refresh(ctx context.Context, req domain.RefreshRequest) (*domain.RefreshResponse, error)
}

// Accounts looks up customers for the session flows.
// This is a Secondary Port (Driven Port).
type Accounts interface {
	// Authenticate returns domain.ErrInvalidCredentials for an unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// Exists reports whether the customer still has an account.
	Exists(ctx context.Context, id int64) (bool, error)
}

// Tokens mints and verifies bearer tokens. *auth.Issuer satisfies it.
type Tokens interface {
	IssuePair(customerID int64) (auth.TokenPair, error)
	IssueAccess(customerID int64) (string, error)
	Verify(token string, want auth.TokenType) (*auth.Claims, error)
}
