package api

import (
	"context"
	"net/http"

	"github.com/mateorivas/brewcart/pkg/types"
	"github.com/mateorivas/brewcart/pkg/validate"
)

// AddProductRequest creates a catalog entry. Admin-only by convention; the
// order service does not gate it yet.
type AddProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	Image         string   `json:"image" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Type          string   `json:"type" validate:"required"`
	Description   string   `json:"description" validate:"required"`
}

// ProductTypesResponse lists the distinct catalog categories.
type ProductTypesResponse struct {
	Types []string `json:"types"`
}

// ListProducts fetches the catalog. A payload that is not a JSON array is a
// decode error, not an empty catalog.
func (c *Client) ListProducts(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/products"}, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []types.Product{}
	}
	return products, nil
}

// ProductTypes fetches the distinct category names.
func (c *Client) ProductTypes(ctx context.Context) ([]string, error) {
	var resp ProductTypesResponse
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/product-types"}, &resp); err != nil {
		return nil, err
	}
	if resp.Types == nil {
		resp.Types = []string{}
	}
	return resp.Types, nil
}

// AddProduct creates a catalog entry.
func (c *Client) AddProduct(ctx context.Context, req AddProductRequest) (*MessageResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp MessageResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/add-product", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
