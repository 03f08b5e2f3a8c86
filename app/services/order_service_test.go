package services

import (
	"context"
	"testing"

	"github.com/avtozap/carservice/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusWalksForwardOnly(t *testing.T) {
	store := newMemStore()
	orderRepo := &fakeOrderRepo{s: store}
	svc := NewOrderService(orderRepo)
	ctx := context.Background()

	order := &models.Order{CustomerID: "customer-1", Status: models.OrderStatusNew, CartID: "cart-1"}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	for _, next := range []string{
		models.OrderStatusInProgress,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
	} {
		updated, err := svc.UpdateStatus(ctx, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	_, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusNew)
	assert.ErrorIs(t, err, ErrBadStatusTransition)
}

func TestUpdateStatusRejectsSkips(t *testing.T) {
	store := newMemStore()
	orderRepo := &fakeOrderRepo{s: store}
	svc := NewOrderService(orderRepo)
	ctx := context.Background()

	order := &models.Order{CustomerID: "customer-1", Status: models.OrderStatusNew, CartID: "cart-1"}
	require.NoError(t, orderRepo.Create(ctx, nil, order))

	_, err := svc.UpdateStatus(ctx, order.ID, models.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrBadStatusTransition)

	reloaded, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusNew, reloaded.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := NewOrderService(&fakeOrderRepo{s: newMemStore()})

	_, err := svc.UpdateStatus(context.Background(), "missing", models.OrderStatusInProgress)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
