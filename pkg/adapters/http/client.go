package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/conduit/internal/logging"
	"github.com/aretw0/conduit/pkg/domain"
	"github.com/aretw0/conduit/pkg/wire"
)

// DefaultEndpoint is where the verdict service listens by default.
const DefaultEndpoint = "http://localhost:8000"

// Client implements ports.AcyclicityChecker against a remote verdict service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the service at baseURL.
// An empty baseURL means DefaultEndpoint.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultEndpoint
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full URL submissions are posted to.
func (c *Client) Endpoint() string { return c.baseURL + ParsePath }

// CheckAcyclic posts the payload and decodes the verdict. Errors wrap
// domain.ErrTimeout, domain.ErrNetworkUnreachable or domain.ErrRemote,
// except caller cancellation which is returned as is.
func (c *Client) CheckAcyclic(ctx context.Context, payload wire.Payload) (wire.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return wire.Response{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return wire.Response{}, fmt.Errorf("%w: %v", domain.ErrNetworkUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wire.Response{}, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return wire.Response{}, c.transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &domain.RemoteError{StatusCode: resp.StatusCode, Detail: detailOf(raw)}
		c.logger.Warn("verdict service rejected submission", "status", resp.StatusCode, "error", rerr)
		return wire.Response{}, rerr
	}

	var out wire.Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return wire.Response{}, &domain.RemoteError{StatusCode: resp.StatusCode, Detail: "malformed response: " + err.Error()}
	}
	return out, nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	}
	c.logger.Debug("verdict service unreachable", "url", c.Endpoint(), "error", err)
	return fmt.Errorf("%w: %v", domain.ErrNetworkUnreachable, err)
}

// detailOf extracts the "detail" member of an error body. Non-string details
// (such as validation error lists) are returned as compact JSON.
func detailOf(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body.Detail); err != nil {
		return string(body.Detail)
	}
	return buf.String()
}
