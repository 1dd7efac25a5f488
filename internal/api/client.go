// Package api is the typed HTTP client for the remote order service. Every
// failure surfaces exactly once as a typed error; nothing here retries, and
// responses that do not match the expected shape become decode errors
// instead of silently collapsing to empty values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
)

const (
	defaultBaseURL             = "http://localhost:8000"
	basePath                   = "/api"
	errorBodyReadLimit   int64 = 2048
	requestIDHeader            = "X-Request-ID"
	defaultClientTimeout       = 15 * time.Second
)

// TokenSource supplies the bearer token for authenticated endpoints. The
// session manager implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client wraps the order service HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenSource attaches the bearer token provider used by authenticated
// endpoints.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// NewClient builds an order service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultClientTimeout}
	}
	return client, nil
}

type requestSpec struct {
	method string
	path   string
	query  url.Values
	body   any
	authed bool
}

// serverError is the FastAPI-style error envelope the order service returns
// on non-2xx statuses.
type serverError struct {
	Detail string `json:"detail"`
}

// MessageResponse is the generic acknowledgment envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, spec requestSpec, out any) error {
	var bodyReader io.Reader
	if spec.body != nil {
		payload, err := json.Marshal(spec.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		bodyReader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + basePath + spec.path
	if len(spec.query) > 0 {
		endpoint += "?" + spec.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, endpoint, bodyReader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	if spec.authed {
		token, err := c.bearerToken(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("%s %s failed", spec.method, spec.path))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp, spec)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDecode, err, fmt.Sprintf("decode %s %s response", spec.method, spec.path))
	}
	return nil
}

func (c *Client) bearerToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "no token source configured")
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(token) == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}
	return token, nil
}

func (c *Client) statusError(resp *http.Response, spec requestSpec) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	detail := strings.TrimSpace(string(raw))
	var envelope serverError
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Detail != "" {
		detail = envelope.Detail
	}

	code := pkgerrors.FromStatus(resp.StatusCode)
	message := fmt.Sprintf("%s %s returned %d", spec.method, spec.path, resp.StatusCode)
	return pkgerrors.Wrap(code, fmt.Errorf("status %d: %s", resp.StatusCode, detail), message).
		WithDetails(map[string]any{"status": resp.StatusCode, "detail": detail})
}
