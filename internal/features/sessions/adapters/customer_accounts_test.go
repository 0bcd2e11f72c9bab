package adapters

import (
	"context"
	"testing"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/auth"
	customeradapters "ticket-sales/internal/features/customers/adapters"
	customerdomain "ticket-sales/internal/features/customers/domain"
	customerservice "ticket-sales/internal/features/customers/service"
	"ticket-sales/internal/features/sessions/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCustomerAccounts(t *testing.T) {
	ctx := context.Background()
	customers := customerservice.NewCustomerService(
		customeradapters.NewMemoryCustomerRepository(),
		auth.NewPasswordHasher(bcrypt.MinCost),
	)
	yes := true
	root := access.Principal{IsSuperuser: true}
	created, err := customers.Create(ctx, root, customerdomain.CustomerInput{
		Email:    "staff@example.com",
		Name:     "Staff",
		Password: "password123",
		IsStaff:  &yes,
	})
	require.NoError(t, err)

	accounts := NewCustomerAccounts(customers)

	t.Run("Authenticate", func(t *testing.T) {
		user, err := accounts.Authenticate(ctx, "staff@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, domain.User{ID: created.ID, Email: "staff@example.com", Name: "Staff", IsStaff: true}, *user)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := accounts.Authenticate(ctx, "staff@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Exists", func(t *testing.T) {
		ok, err := accounts.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, customers.Delete(ctx, root, created.ID))
		ok, err = accounts.Exists(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
