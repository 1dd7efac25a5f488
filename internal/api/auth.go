package api

import (
	"context"
	"net/http"

	"github.com/mateorivas/brewcart/pkg/enums"
	"github.com/mateorivas/brewcart/pkg/validate"
)

// SignupRequest creates a new account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is shared by signup and login.
type LoginResponse struct {
	Message  string         `json:"message"`
	Token    string         `json:"token,omitempty"`
	UserID   string         `json:"user_id"`
	Name     string         `json:"name,omitempty"`
	Email    string         `json:"email,omitempty"`
	UserRole enums.UserRole `json:"user_role,omitempty"`
}

// Signup creates an account on the order service.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/signup", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates and returns the identity to persist locally.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/login", body: req}, &resp); err != nil {
		return nil, err
	}
	if resp.UserRole == "" {
		resp.UserRole = enums.UserRoleUser
	}
	return &resp, nil
}
