package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/mateorivas/brewcart/pkg/validate"
)

// ContactRequest is the storefront contact form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}

// ContactSubmitResponse acknowledges a submitted contact form.
type ContactSubmitResponse struct {
	Message   string `json:"message"`
	ContactID string `json:"contact_id"`
}

// Contact is one message in the admin triage queue.
type Contact struct {
	ContactID   string              `json:"contact_id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Message     string              `json:"message"`
	SubmittedAt string              `json:"submitted_at"`
	Status      enums.ContactStatus `json:"status"`
}

// SubmitContact sends the contact form.
func (c *Client) SubmitContact(ctx context.Context, req ContactRequest) (*ContactSubmitResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	var resp ContactSubmitResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/contact", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Contacts lists every contact message, newest first.
func (c *Client) Contacts(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	if err := c.do(ctx, requestSpec{method: http.MethodGet, path: "/admin/contacts", authed: true}, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []Contact{}
	}
	return contacts, nil
}

// UpdateContactStatus moves a contact message through triage.
func (c *Client) UpdateContactStatus(ctx context.Context, contactID string, status enums.ContactStatus) (*MessageResponse, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid contact status %q", status))
	}
	var resp MessageResponse
	path := fmt.Sprintf("/admin/contacts/%s/status", url.PathEscape(contactID))
	query := url.Values{"status": []string{status.String()}}
	if err := c.do(ctx, requestSpec{method: http.MethodPut, path: path, query: query, authed: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteContact removes a contact message permanently.
func (c *Client) DeleteContact(ctx context.Context, contactID string) (*MessageResponse, error) {
	var resp MessageResponse
	path := fmt.Sprintf("/admin/contacts/%s", url.PathEscape(contactID))
	if err := c.do(ctx, requestSpec{method: http.MethodDelete, path: path, authed: true}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
