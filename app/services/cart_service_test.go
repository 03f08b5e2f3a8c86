package services

import (
	"context"
	"testing"

	"github.com/avtozap/carservice/app/audit"
	"github.com/avtozap/carservice/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartTestEnv(t *testing.T) (*memStore, *CartService) {
	t.Helper()
	store := newMemStore()
	auditLog := audit.NewLogger(64)
	t.Cleanup(auditLog.Close)

	svc := NewCartService(
		&fakeCartRepo{s: store},
		&fakeCartItemRepo{s: store},
		&fakeCustomerRepo{s: store},
		&fakePartResolver{s: store},
		auditLog,
	)
	return store, svc
}

func TestResolveCartCreatesCustomerAndCartOnce(t *testing.T) {
	_, svc := newCartTestEnv(t)
	ctx := context.Background()

	identity := Identity{UserID: "user-1"}
	first, err := svc.ResolveCart(ctx, identity)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, first.CustomerID)

	second, err := svc.ResolveCart(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same identity must keep resolving the same active cart")
}

func TestResolveCartScopesAnonymousCartsBySession(t *testing.T) {
	_, svc := newCartTestEnv(t)
	ctx := context.Background()

	cartA, err := svc.ResolveCart(ctx, Identity{SessionKey: "session-a"})
	require.NoError(t, err)
	cartB, err := svc.ResolveCart(ctx, Identity{SessionKey: "session-b"})
	require.NoError(t, err)

	assert.NotEqual(t, cartA.ID, cartB.ID, "two visitors must never share a cart")
	assert.True(t, cartA.ForAnonymousUser)

	again, err := svc.ResolveCart(ctx, Identity{SessionKey: "session-a"})
	require.NoError(t, err)
	assert.Equal(t, cartA.ID, again.ID)
}

func TestAddToCartIsIdempotent(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)

	item, err := svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)
	assert.Equal(t, 1, item.Qty)
	assert.True(t, item.TotalCost.Equal(decimal.RequireFromString("1225.00")))

	again, err := svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)
	assert.Equal(t, item.ID, again.ID, "adding the same part twice must reuse the line item")
	assert.Equal(t, 1, again.Qty, "a repeated add must not bump the quantity")

	items, err := (&fakeCartItemRepo{s: store}).ListByCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, cart.TotalProducts)
	assert.True(t, cart.TotalCost.Equal(decimal.RequireFromString("1225.00")))
}

func TestAddToCartUnknownPart(t *testing.T) {
	_, svc := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, cart, models.PartRef{Kind: models.KindFilter, ID: "missing"})
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestChangeQuantityRepricesLineAndCart(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)

	item, err := svc.ChangeQuantity(ctx, cart, part.Ref(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Qty)
	assert.True(t, item.TotalCost.Equal(decimal.RequireFromString("3675.00")))
	assert.True(t, cart.TotalCost.Equal(decimal.RequireFromString("3675.00")))
	assert.Equal(t, 1, cart.TotalProducts, "quantity changes do not add lines")
}

func TestChangeQuantityRejectsNonPositive(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindFilter, "part-1", "oil-filter", "10.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)

	for _, qty := range []int{0, -1, -100} {
		_, err := svc.ChangeQuantity(ctx, cart, part.Ref(), qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.True(t, cart.TotalCost.Equal(decimal.RequireFromString("10.00")))
}

func TestChangeQuantityMissingLine(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindFilter, "part-1", "oil-filter", "10.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = svc.ChangeQuantity(ctx, cart, part.Ref(), 2)
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	brakes := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")
	filter := store.addPart(models.KindFilter, "part-2", "oil-filter", "10.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, brakes.Ref())
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, filter.Ref())
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(ctx, cart, filter.Ref()))
	assert.Equal(t, 1, cart.TotalProducts)
	assert.True(t, cart.TotalCost.Equal(decimal.RequireFromString("1225.00")))
}

func TestRemoveMissingLineLeavesTotalsUntouched(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)

	err = svc.RemoveFromCart(ctx, cart, models.PartRef{Kind: models.KindFilter, ID: "never-added"})
	assert.ErrorIs(t, err, ErrLineItemNotFound)

	reloaded, err := svc.CartWithItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.TotalProducts)
	assert.True(t, reloaded.TotalCost.Equal(decimal.RequireFromString("1225.00")))
}

func TestRecalculateIsIdempotent(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, cart, part.Ref())
	require.NoError(t, err)

	first, err := svc.Recalculate(ctx, cart)
	require.NoError(t, err)
	second, err := svc.Recalculate(ctx, cart)
	require.NoError(t, err)

	assert.Equal(t, first.TotalProducts, second.TotalProducts)
	assert.True(t, first.TotalCost.Equal(second.TotalCost))
}

func TestRecalculateEmptyCartIsZero(t *testing.T) {
	_, svc := newCartTestEnv(t)
	ctx := context.Background()

	cart, err := svc.ResolveCart(ctx, Identity{SessionKey: "session-a"})
	require.NoError(t, err)

	cart, err = svc.Recalculate(ctx, cart)
	require.NoError(t, err)
	assert.Equal(t, 0, cart.TotalProducts)
	assert.True(t, cart.TotalCost.IsZero())
}

func TestMutationsRefuseOrderedCart(t *testing.T) {
	store, svc := newCartTestEnv(t)
	ctx := context.Background()
	part := store.addPart(models.KindBrakes, "part-1", "pirelli-h80", "1225.00")

	cart, err := svc.ResolveCart(ctx, Identity{UserID: "user-1"})
	require.NoError(t, err)
	cart.InOrder = true

	_, err = svc.AddToCart(ctx, cart, part.Ref())
	assert.ErrorIs(t, err, ErrCartOrdered)
	err = svc.RemoveFromCart(ctx, cart, part.Ref())
	assert.ErrorIs(t, err, ErrCartOrdered)
	_, err = svc.ChangeQuantity(ctx, cart, part.Ref(), 2)
	assert.ErrorIs(t, err, ErrCartOrdered)
}
