package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avtozap/carservice/app/audit"
	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// OrderForm is the checkout submission. Validation failures surface as a
// *ValidationError and leave every record untouched.
type OrderForm struct {
	FirstName  string    `form:"first_name" validate:"required,min=2,max=100"`
	LastName   string    `form:"last_name" validate:"required,min=2,max=100"`
	Phone      string    `form:"phone" validate:"required,min=7,max=20"`
	Address    string    `form:"address" validate:"required,max=255"`
	BuyingType string    `form:"buying_type" validate:"required,oneof=self_pickup delivery"`
	OrderDate  time.Time `form:"order_date" validate:"required"`
	Comment    string    `form:"comment" validate:"max=1000"`
}

type CheckoutService struct {
	transactor   repositories.Transactor
	cartRepo     repositories.CartRepository
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	validate     *validator.Validate
	audit        *audit.Logger
}

func NewCheckoutService(
	transactor repositories.Transactor,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	customerRepo repositories.CustomerRepository,
	validate *validator.Validate,
	auditLog *audit.Logger,
) *CheckoutService {
	return &CheckoutService{
		transactor:   transactor,
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		validate:     validate,
		audit:        auditLog,
	}
}

func (s *CheckoutService) validateForm(form OrderForm) error {
	fields := map[string]string{}
	if err := s.validate.Struct(form); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validating order form: %w", err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	if !form.OrderDate.IsZero() && form.OrderDate.Before(time.Now().Truncate(24*time.Hour)) {
		fields["OrderDate"] = "must not be in the past"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// PlaceOrder turns the customer's cart into an order. Creating the order,
// flipping the cart's in_order flag, and linking the two happen in one
// transaction; any failure rolls everything back. Once committed, the next
// cart resolution for the same identity starts a fresh cart, because the
// consumed one no longer matches in_order = false.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customerID, cartID string, form OrderForm) (*models.Order, error) {
	if err := s.validateForm(form); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("loading customer %s: %w", customerID, err)
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	order := &models.Order{
		CustomerID: customerID,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Phone:      form.Phone,
		Address:    form.Address,
		Status:     models.OrderStatusNew,
		BuyingType: form.BuyingType,
		Comment:    form.Comment,
		OrderDate:  form.OrderDate,
		CartID:     cartID,
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		cart, err := s.cartRepo.GetForUpdate(ctx, tx, cartID)
		if err != nil {
			return fmt.Errorf("locking cart %s: %w", cartID, err)
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if cart.InOrder {
			return ErrCartOrdered
		}
		if cart.CustomerID == nil || *cart.CustomerID != customerID {
			return ErrNotCartOwner
		}

		if err := s.cartRepo.MarkOrdered(ctx, tx, cartID); err != nil {
			if errors.Is(err, repositories.ErrCartAlreadyOrdered) {
				return ErrCartOrdered
			}
			return fmt.Errorf("consuming cart %s: %w", cartID, err)
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("creating order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record("order.place", cartID, fmt.Sprintf("order=%s customer=%s", order.ID, customerID))
	return order, nil
}
