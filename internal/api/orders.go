package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mateorivas/brewcart/internal/cart"
)

// CheckoutRequest is the payload submitted to place an order. Items may be
// empty; the order service decides how to treat an empty cart.
type CheckoutRequest struct {
	UserID string              `json:"user_id"`
	Items  []cart.CheckoutItem `json:"items"`
}

// OrderItem is one line of a placed order as the service reports it.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Order is the confirmation returned by checkout.
type Order struct {
	OrderID     string      `json:"order_id"`
	UserID      string      `json:"user_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Timestamp   string      `json:"timestamp"`
}

// CheckoutResponse wraps the confirmation message and the created order.
type CheckoutResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}

// HistoryEntry is one past order in the user's history.
type HistoryEntry struct {
	OrderID     string      `json:"order_id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      string      `json:"status"`
	Timestamp   string      `json:"timestamp"`
}

// Checkout submits the cart. The request is sent even when items is empty.
// Failures are surfaced to the caller; the cart is never cleared here.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.Items == nil {
		req.Items = []cart.CheckoutItem{}
	}
	var resp CheckoutResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/checkout", body: req, authed: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// OrderHistory lists the user's past orders.
func (c *Client) OrderHistory(ctx context.Context, userID string) ([]HistoryEntry, error) {
	var history []HistoryEntry
	path := fmt.Sprintf("/order-history/%s", url.PathEscape(userID))
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: path, authed: true}, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []HistoryEntry{}
	}
	return history, nil
}
