// OrderService
//
// This file implements the order lifecycle: boundary validation of new
// orders, the status transition policy, and the hand-off of committed
// state to the notification dispatcher. The dispatcher is invoked only
// after the surrounding transaction has committed and the order has been
// reloaded, so a notification always reflects a fully-written order.
// Notification outcome never affects the calling request.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-food-backend/internal/domain"
	"github.com/tbourn/go-food-backend/internal/repo"
	"github.com/tbourn/go-food-backend/internal/storage"
)

// Notifier schedules fire-and-forget delivery of order events. Both
// methods must return immediately; delivery happens in the background.
type Notifier interface {
	// OrderCreated announces a new order to the admins and, when routable,
	// to the ordering customer.
	OrderCreated(o *domain.Order)
	// StatusChanged announces a status change to the ordering customer.
	StatusChanged(o *domain.Order)
}

// OrderService drives order creation and status transitions.
type OrderService struct {
	Store    *storage.Store
	Notifier Notifier
}

// NewOrderService constructs an OrderService. notifier may be nil, in
// which case events are dropped silently (useful in tests and when no bot
// token is configured).
func NewOrderService(st *storage.Store, notifier Notifier) *OrderService {
	return &OrderService{Store: st, Notifier: notifier}
}

// Create validates the request at the boundary, persists the order with
// its line items in one transaction, and schedules creation notifications.
func (s *OrderService) Create(ctx context.Context, in repo.NewOrder) (*domain.Order, error) {
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return nil, ErrInvalidCustomer
	}
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
	}

	o, err := repo.CreateOrder(ctx, s.Store, in)
	if err != nil {
		return nil, err
	}
	if s.Notifier != nil {
		s.Notifier.OrderCreated(o)
	}
	return o, nil
}

// List returns orders newest first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, status string) ([]domain.Order, error) {
	if status != "" {
		if _, ok := domain.ParseStatus(status); !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
	}
	return repo.ListOrders(ctx, s.Store, status)
}

// Get returns one order with decoded items, or ErrOrderNotFound.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	o, err := repo.GetOrder(ctx, s.Store, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

// UpdateStatus validates and persists a status transition, then schedules
// a status notification with the reloaded order. The returned order
// reflects the new state.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	next, ok := domain.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cur.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur.Status, next)
	}

	if err := repo.UpdateOrderStatus(ctx, s.Store, id, next); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	o, err := repo.GetOrder(ctx, s.Store, id)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, "status_changed", fmt.Sprintf("order=%s status=%s", id, next))
	if s.Notifier != nil {
		s.Notifier.StatusChanged(o)
	}
	return o, nil
}

// Delete removes an order and its items. Administrative escape hatch.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	err := repo.DeleteOrder(ctx, s.Store, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	s.audit(ctx, "order_deleted", "order="+id)
	return nil
}

func (s *OrderService) audit(ctx context.Context, action, details string) {
	err := repo.LogActivity(ctx, s.Store, &domain.Activity{
		UserID:     "api",
		ActionType: action,
		Details:    details,
	})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("activity log write failed")
	}
}
