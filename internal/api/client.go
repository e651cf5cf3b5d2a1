// Package api talks to the registration backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// UsersPath is the registration endpoint, relative to the base URL.
const UsersPath = "/api/1.0/users"

// RequestIDHeader carries a per-call identifier for correlating client and
// server logs.
const RequestIDHeader = "X-Request-ID"

// ErrRegistrationRejected is wrapped by StatusError.
var ErrRegistrationRejected = errors.New("registration rejected")

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrRegistrationRejected, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap makes errors.Is(err, ErrRegistrationRejected) hold.
func (e *StatusError) Unwrap() error {
	return ErrRegistrationRejected
}

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the scheme and host of the backend, e.g. http://localhost:8080.
	BaseURL string
	// Timeout bounds one request. Zero means no timeout.
	Timeout time.Duration
	// HTTPClient overrides the transport. Defaults to a new http.Client.
	HTTPClient *http.Client
}

// Client implements registration.Registrar over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
	newID    func() string
}

var _ registration.Registrar = (*Client)(nil)

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	endpoint, err := usersEndpoint(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if cfg.Timeout > 0 {
		copied := *hc
		copied.Timeout = cfg.Timeout
		hc = &copied
	}

	return &Client{
		endpoint: endpoint,
		http:     hc,
		newID:    uuid.NewString,
	}, nil
}

func usersEndpoint(base string) (string, error) {
	if base == "" {
		return "", errors.New("base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL must be http or https, got %q", base)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL has no host: %q", base)
	}
	return strings.TrimRight(u.String(), "/") + UsersPath, nil
}

// Endpoint returns the full URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Register posts p as JSON. Any 2xx is success; the body is ignored.
func (c *Client) Register(ctx context.Context, p registration.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorErr(log.CatAPI, "Register request failed", err, "request_id", requestID)
		return fmt.Errorf("posting registration: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	log.Debug(log.CatAPI, "Register response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
