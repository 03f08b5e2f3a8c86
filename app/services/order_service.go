package services

import (
	"context"
	"fmt"

	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
)

type OrderService struct {
	orderRepo repositories.OrderRepository
}

func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.orderRepo.ListByCustomer(ctx, customerID)
}

// UpdateStatus advances an order one step along
// new -> in_progress -> ready -> completed. Anything else is refused.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
	}
	if !models.CanTransitionOrderStatus(order.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, status, ErrBadStatusTransition)
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("updating order %s status: %w", orderID, err)
	}
	order.Status = status
	return order, nil
}
