// Package checkout turns the locally aggregated cart into a placed order.
// The cart is cleared only after the order service confirms the order;
// any failure leaves the local cart untouched so the user can retry.
package checkout

import (
	"context"

	"github.com/mateorivas/brewcart/internal/api"
	"github.com/mateorivas/brewcart/internal/cart"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/mateorivas/brewcart/pkg/logger"
)

// CartSource supplies and clears the user's stored cart.
type CartSource interface {
	CheckoutItems(ctx context.Context, userID string) ([]cart.CheckoutItem, error)
	Clear(ctx context.Context, userID string) error
}

// OrderPlacer submits a checkout payload to the order service.
type OrderPlacer interface {
	Checkout(ctx context.Context, req api.CheckoutRequest) (*api.CheckoutResponse, error)
}

// Service orchestrates cart submission.
type Service struct {
	carts  CartSource
	orders OrderPlacer
	log    *logger.Logger
}

// NewService wires the checkout orchestrator.
func NewService(carts CartSource, orders OrderPlacer, log *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart source is required")
	}
	if orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order placer is required")
	}
	if log == nil {
		log = logger.New(logger.Options{ServiceName: "checkout"})
	}
	return &Service{carts: carts, orders: orders, log: log}, nil
}

// Submit places an order from the user's stored cart. The payload is sent
// even when the cart is empty; the order service owns that rejection. On
// success the local cart is cleared before returning the confirmation.
func (s *Service) Submit(ctx context.Context, userID string) (*api.CheckoutResponse, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	ctx = s.log.WithUserID(ctx, userID)

	items, err := s.carts.CheckoutItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := s.orders.Checkout(ctx, api.CheckoutRequest{UserID: userID, Items: items})
	if err != nil {
		s.log.Error(ctx, "checkout rejected", err)
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order already exists upstream; losing the local clear is
		// recoverable, losing the confirmation is not.
		s.log.Error(ctx, "order placed but clearing local cart failed", err)
		return resp, nil
	}

	ctx = s.log.WithOrderID(ctx, resp.Order.OrderID)
	s.log.Info(ctx, "order placed and local cart cleared")
	return resp, nil
}
