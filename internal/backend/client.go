package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/srilaxmialankar/storefront-golang/internal/config"
	"github.com/srilaxmialankar/storefront-golang/pkg/logx"
)

// TokenSource supplies the current bearer token, or "" when the session is
// anonymous. The client consults it on every request so a login that happens
// mid-session is picked up immediately.
type TokenSource func() string

// Client is the typed HTTP client for the remote storefront backend. All
// catalog, price, wishlist, auth, cart and order data is owned by that
// backend; this client only reads and mutates it.
type Client struct {
	http      *http.Client
	endpoints config.Endpoints
	token     TokenSource
	log       zerolog.Logger
}

// New builds a backend client from the service configuration. tokenSource
// may be nil for a client that only hits public routes.
func New(cfg *config.Config, tokenSource TokenSource) *Client {
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		endpoints: cfg.Endpoints(),
		token:     tokenSource,
		log:       logx.With("backend"),
	}
}

// APIError is a non-2xx response from the backend, carrying the HTTP status
// and the backend's message (or a generic one when the body was unreadable).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// IsAuthFailure reports whether err is a 401/403 from the backend.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ErrUnexpectedShape marks a 2xx response whose body did not match any
// accepted shape for the resource.
var ErrUnexpectedShape = errors.New("backend: unexpected response shape")

// do performs one JSON round trip. body and out may be nil. Responses are
// decoded into out; non-2xx statuses become an *APIError.
func (c *Client) do(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	if len(query) > 0 {
		rawURL = rawURL + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
		c.log.Warn().
			Str("method", method).
			Str("url", rawURL).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("backend request failed")
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnexpectedShape, method, rawURL, err)
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error body. Backends
// vary between {"message": ...} and {"error": ...}; fall back to the status
// text when neither is present.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "request failed"
}
