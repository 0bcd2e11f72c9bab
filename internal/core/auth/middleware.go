package auth

import (
	"context"
	"errors"
	"strings"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/web"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrUnknownPrincipal is returned by a PrincipalSource when the token's customer no longer exists.
var ErrUnknownPrincipal = errors.New("principal not found")

// PrincipalSource loads the current permissions of a customer.
type PrincipalSource interface {
	PrincipalByID(ctx context.Context, customerID int64) (access.Principal, error)
}

// RequireAuth rejects requests without a valid bearer access token and stores
// the caller's principal on the request.
func RequireAuth(tokens *Issuer, source PrincipalSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return web.NewError(fiber.StatusUnauthorized, "Authentication credentials were not provided")
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return web.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		claims, err := tokens.Verify(strings.TrimSpace(token), TokenTypeAccess)
		if err != nil {
			return web.NewError(fiber.StatusUnauthorized, "Given token not valid for any token type")
		}

		principal, err := source.PrincipalByID(c.UserContext(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrUnknownPrincipal) {
				return web.NewError(fiber.StatusUnauthorized, "User not found")
			}
			logger.WithRay(web.RayID(c)).Error("Failed to load principal",
				zap.Int64("customer_id", claims.UserID),
				zap.Error(err),
			)
			return err
		}

		web.SetPrincipal(c, principal)
		return c.Next()
	}
}
