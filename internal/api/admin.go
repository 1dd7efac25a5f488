package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AdminOrder is one row of the admin order table. Field names follow the
// dashboard payload, which differs from the order-history shape.
type AdminOrder struct {
	ID        string      `json:"_id"`
	User      OrderUser   `json:"user"`
	CreatedAt string      `json:"createdAt"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
}

// OrderUser carries the buyer's display name.
type OrderUser struct {
	Name string `json:"name"`
}

// Stats aggregates order counts and revenue for the dashboard.
type Stats struct {
	TotalOrders     int     `json:"totalOrders"`
	Revenue         float64 `json:"revenue"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
}

// PopularProduct is a per-product popularity/revenue row.
type PopularProduct struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	TimesOrdered int     `json:"timesOrdered"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// AdminOrders lists every order in the shop.
func (c *Client) AdminOrders(ctx context.Context) ([]AdminOrder, error) {
	var orders []AdminOrder
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/admin/orders"}, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []AdminOrder{}
	}
	return orders, nil
}

// MarkOrderCompleted transitions an order to completed.
func (c *Client) MarkOrderCompleted(ctx context.Context, orderID string) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/admin/mark-completed/%s", url.PathEscape(orderID))
	if err := c.do(ctx, requestSpec{method: http.MethodPut, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelOrder transitions an order to cancelled.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/admin/cancel-order/%s", url.PathEscape(orderID))
	if err := c.do(ctx, requestSpec{method: http.MethodPut, path: path}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminStats fetches the dashboard aggregates.
func (c *Client) AdminStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/admin/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PopularProducts fetches per-product popularity and revenue.
func (c *Client) PopularProducts(ctx context.Context) ([]PopularProduct, error) {
	var products []PopularProduct
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/admin/products"}, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []PopularProduct{}
	}
	return products, nil
}
