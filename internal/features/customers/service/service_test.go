package service

import (
	"context"
	"testing"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/features/customers/adapters"
	"ticket-sales/internal/features/customers/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	staff = access.Principal{CustomerID: 100, IsStaff: true}
	yes   = true
	no    = false
)

func newService(t *testing.T) *CustomerServiceImpl {
	t.Helper()
	return NewCustomerService(adapters.NewMemoryCustomerRepository(), auth.NewPasswordHasher(bcrypt.MinCost))
}

func mustCreate(t *testing.T, s *CustomerServiceImpl, email string) *domain.Customer {
	t.Helper()
	c, err := s.Create(context.Background(), staff, domain.CustomerInput{Email: email, Name: "N", Password: "password123"})
	require.NoError(t, err)
	return c
}

func TestCustomerService_Create(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	t.Run("HashesPassword", func(t *testing.T) {
		c := mustCreate(t, s, "alice@Example.COM")
		assert.Equal(t, "alice@example.com", c.Email)
		assert.NotEqual(t, "password123", c.PasswordHash)
		assert.False(t, c.DateJoined.IsZero())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := s.Create(ctx, staff, domain.CustomerInput{Email: "alice@example.com", Password: "password123"})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("PasswordRequired", func(t *testing.T) {
		_, err := s.Create(ctx, staff, domain.CustomerInput{Email: "nopass@example.com"})
		assert.ErrorIs(t, err, domain.ErrPasswordRequired)
	})

	t.Run("CustomerCannotCreateStaff", func(t *testing.T) {
		plain := access.Principal{CustomerID: 1}
		_, err := s.Create(ctx, plain, domain.CustomerInput{Email: "x@example.com", Password: "password123", IsStaff: &yes})
		assert.ErrorIs(t, err, domain.ErrPrivilegeEscalation)
	})

	t.Run("StaffCanCreateStaff", func(t *testing.T) {
		c, err := s.Create(ctx, staff, domain.CustomerInput{Email: "ops@example.com", Password: "password123", IsStaff: &yes})
		require.NoError(t, err)
		assert.True(t, c.IsStaff)
	})
}

func TestCustomerService_Visibility(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "alice@example.com")
	bob := mustCreate(t, s, "bob@example.com")
	asAlice := alice.Principal()

	list, err := s.List(ctx, asAlice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alice.ID, list[0].ID)

	all, err := s.List(ctx, staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.Get(ctx, asAlice, bob.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	got, err := s.Get(ctx, staff, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)
}

func TestCustomerService_Update(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "alice@example.com")
	bob := mustCreate(t, s, "bob@example.com")
	asAlice := alice.Principal()

	t.Run("OwnProfile", func(t *testing.T) {
		name := "Alice"
		updated, err := s.Update(ctx, asAlice, alice.ID, domain.CustomerPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
	})

	t.Run("OtherProfileIsHidden", func(t *testing.T) {
		name := "Hacked"
		_, err := s.Update(ctx, asAlice, bob.ID, domain.CustomerPatch{Name: &name})
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})

	t.Run("CannotPromoteSelf", func(t *testing.T) {
		_, err := s.Update(ctx, asAlice, alice.ID, domain.CustomerPatch{IsSuperuser: &yes})
		assert.ErrorIs(t, err, domain.ErrPrivilegeEscalation)
	})

	t.Run("RestatingCurrentFlagsIsFine", func(t *testing.T) {
		_, err := s.Update(ctx, asAlice, alice.ID, domain.CustomerPatch{IsStaff: &no})
		assert.NoError(t, err)
	})

	t.Run("PasswordChange", func(t *testing.T) {
		pw := "new-password-1"
		_, err := s.Update(ctx, asAlice, alice.ID, domain.CustomerPatch{Password: &pw})
		require.NoError(t, err)

		_, err = s.Authenticate(ctx, "alice@example.com", "new-password-1")
		assert.NoError(t, err)
	})

	t.Run("EmailTaken", func(t *testing.T) {
		email := "bob@example.com"
		_, err := s.Update(ctx, asAlice, alice.ID, domain.CustomerPatch{Email: &email})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestCustomerService_Delete(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "alice@example.com")
	bob := mustCreate(t, s, "bob@example.com")

	assert.ErrorIs(t, s.Delete(ctx, alice.Principal(), bob.ID), domain.ErrCustomerNotFound)
	require.NoError(t, s.Delete(ctx, alice.Principal(), alice.ID))

	_, err := s.Get(ctx, staff, alice.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_Authenticate(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "alice@example.com")

	got, err := s.Authenticate(ctx, "alice@EXAMPLE.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.Authenticate(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCustomerService_PrincipalByID(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	c, err := s.Create(ctx, staff, domain.CustomerInput{Email: "root@example.com", Password: "password123", IsSuperuser: &yes})
	require.NoError(t, err)

	p, err := s.PrincipalByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, p.Privileged())
	assert.Equal(t, c.ID, p.CustomerID)

	_, err = s.PrincipalByID(ctx, 999)
	assert.ErrorIs(t, err, auth.ErrUnknownPrincipal)
}
