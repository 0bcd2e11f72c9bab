package service

import (
	"context"
	"testing"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/orders/adapters"
	"ticket-sales/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = access.Principal{CustomerID: 1}
	bob   = access.Principal{CustomerID: 2}
	admin = access.Principal{CustomerID: 3, IsSuperuser: true}
)

func TestOrderService_CreateStampsCaller(t *testing.T) {
	svc := NewOrderService(adapters.NewMemoryOrderRepository())

	order, err := svc.Create(context.Background(), alice, domain.OrderInput{TotalCents: 2500})
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.CustomerID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	order, err = svc.Create(context.Background(), admin, domain.OrderInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), order.CustomerID)
}

func TestOrderService_Ownership(t *testing.T) {
	ctx := context.Background()
	svc := NewOrderService(adapters.NewMemoryOrderRepository())

	a1, err := svc.Create(ctx, alice, domain.OrderInput{})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, domain.OrderInput{})
	require.NoError(t, err)
	b1, err := svc.Create(ctx, bob, domain.OrderInput{})
	require.NoError(t, err)

	mine, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, alice.CustomerID, o.CustomerID)
	}

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.Get(ctx, alice, b1.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	paid := domain.OrderStatusPaid
	_, err = svc.Update(ctx, bob, a1.ID, domain.OrderPatch{Status: &paid})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bob, a1.ID), domain.ErrOrderNotFound)

	updated, err := svc.Update(ctx, admin, a1.ID, domain.OrderPatch{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, updated.Status)
	assert.Equal(t, alice.CustomerID, updated.CustomerID)

	require.NoError(t, svc.Delete(ctx, alice, a1.ID))
	_, err = svc.Get(ctx, admin, a1.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
