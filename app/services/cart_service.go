package services

import (
	"context"
	"fmt"

	"github.com/avtozap/carservice/app/audit"
	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/shopspring/decimal"
)

// Identity is who the current request shops as: a logged-in user, or an
// anonymous visitor known only by the session key minted into their cookie.
type Identity struct {
	UserID     string
	SessionKey string
}

func (id Identity) Authenticated() bool { return id.UserID != "" }

// PartResolver is the slice of the part registry the cart needs: turning a
// tagged reference into a priced part.
type PartResolver interface {
	Resolve(ctx context.Context, ref models.PartRef) (*models.Part, error)
}

type CartService struct {
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepository
	customerRepo repositories.CustomerRepository
	parts        PartResolver
	audit        *audit.Logger
}

func NewCartService(
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	customerRepo repositories.CustomerRepository,
	parts PartResolver,
	auditLog *audit.Logger,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		customerRepo: customerRepo,
		parts:        parts,
		audit:        auditLog,
	}
}

// ResolveCart returns the identity's single active cart, creating the
// customer row and/or the cart when they do not exist yet. Anonymous carts
// are scoped by session key, so two visitors never share a basket.
func (s *CartService) ResolveCart(ctx context.Context, identity Identity) (*models.Cart, error) {
	if identity.Authenticated() {
		customer, err := s.customerRepo.GetOrCreateByUserID(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolving customer for user %s: %w", identity.UserID, err)
		}
		cart, err := s.cartRepo.GetOrCreateActiveForCustomer(ctx, customer.ID)
		if err != nil {
			return nil, fmt.Errorf("resolving cart for customer %s: %w", customer.ID, err)
		}
		return cart, nil
	}

	cart, err := s.cartRepo.GetOrCreateActiveForSession(ctx, identity.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("resolving anonymous cart: %w", err)
	}
	return cart, nil
}

// AddToCart puts a part into the cart. Adding a part that is already in the
// cart reuses the existing line untouched: add is idempotent on item
// identity and never bumps the quantity.
func (s *CartService) AddToCart(ctx context.Context, cart *models.Cart, ref models.PartRef) (*models.CartItem, error) {
	if cart.InOrder {
		return nil, ErrCartOrdered
	}

	part, err := s.parts.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolving part %s/%s: %w", ref.Kind, ref.ID, err)
	}
	if part == nil {
		return nil, ErrPartNotFound
	}

	item := &models.CartItem{
		CustomerID: cart.CustomerID,
		CartID:     cart.ID,
		PartKind:   ref.Kind,
		PartID:     ref.ID,
		Qty:        1,
		TotalCost:  part.Price,
	}
	created, err := s.cartItemRepo.GetOrCreate(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("adding part to cart %s: %w", cart.ID, err)
	}

	if _, err := s.Recalculate(ctx, cart); err != nil {
		return nil, err
	}
	if created {
		s.audit.Record("cart.add", cart.ID, fmt.Sprintf("part=%s/%s", ref.Kind, ref.ID))
	}
	return item, nil
}

// RemoveFromCart deletes the line item referencing the given part.
func (s *CartService) RemoveFromCart(ctx context.Context, cart *models.Cart, ref models.PartRef) error {
	if cart.InOrder {
		return ErrCartOrdered
	}

	item, err := s.cartItemRepo.GetByCartAndPart(ctx, cart.ID, ref)
	if err != nil {
		return fmt.Errorf("looking up cart item: %w", err)
	}
	if item == nil {
		return ErrLineItemNotFound
	}

	if err := s.cartItemRepo.Delete(ctx, item); err != nil {
		return fmt.Errorf("removing part from cart %s: %w", cart.ID, err)
	}

	if _, err := s.Recalculate(ctx, cart); err != nil {
		return err
	}
	s.audit.Record("cart.remove", cart.ID, fmt.Sprintf("part=%s/%s", ref.Kind, ref.ID))
	return nil
}

// ChangeQuantity sets the line's quantity and reprices it at the part's
// current catalog price. Quantities below one are rejected outright.
func (s *CartService) ChangeQuantity(ctx context.Context, cart *models.Cart, ref models.PartRef, qty int) (*models.CartItem, error) {
	if cart.InOrder {
		return nil, ErrCartOrdered
	}
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartItemRepo.GetByCartAndPart(ctx, cart.ID, ref)
	if err != nil {
		return nil, fmt.Errorf("looking up cart item: %w", err)
	}
	if item == nil {
		return nil, ErrLineItemNotFound
	}

	part, err := s.parts.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolving part %s/%s: %w", ref.Kind, ref.ID, err)
	}
	if part == nil {
		return nil, ErrPartNotFound
	}

	item.Qty = qty
	item.TotalCost = part.Price.Mul(decimal.NewFromInt(int64(qty)))
	if err := s.cartItemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("updating cart item quantity: %w", err)
	}

	if _, err := s.Recalculate(ctx, cart); err != nil {
		return nil, err
	}
	s.audit.Record("cart.qty", cart.ID, fmt.Sprintf("part=%s/%s qty=%d", ref.Kind, ref.ID, qty))
	return item, nil
}

// Recalculate rewrites the cart's derived aggregate from its current lines:
// total_cost is the sum of line totals, total_products the line count, both
// zero for an empty cart. Calling it twice without an intervening mutation
// stores the same values, and nothing else ever writes these columns.
func (s *CartService) Recalculate(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	count, sum, err := s.cartItemRepo.Totals(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("aggregating cart %s: %w", cart.ID, err)
	}
	if err := s.cartRepo.UpdateTotals(ctx, cart.ID, count, sum); err != nil {
		return nil, fmt.Errorf("storing totals for cart %s: %w", cart.ID, err)
	}
	cart.TotalProducts = count
	cart.TotalCost = sum
	return cart, nil
}

// CartWithItems loads the cart plus its lines for display.
func (s *CartService) CartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}
