package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 1 << 20
)

// Client dispatches built requests against the orders API. It does not retry,
// de-duplicate or queue; each call is one attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	now        func() time.Time
	timeout    time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock replaces the source of create_time.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithTimeout bounds each call. Zero, the default, waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTracing wraps the transport so outgoing calls carry W3C trace headers.
func WithTracing() Option {
	return func(c *Client) {
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced := *c.httpClient
		traced.Transport = otelhttp.NewTransport(base)
		c.httpClient = &traced
	}
}

func New(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Now is the clock used to stamp create_time.
func (c *Client) Now() time.Time {
	return c.now()
}

// Do sends req and decodes a 2xx JSON body into out, which may be nil.
// Every failure is returned as *APIError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	requestID := httpReq.Header.Get(requestIDHeader)

	c.logger.Debug("Dispatching request",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("request_id", requestID))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("Request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return &APIError{Kind: KindTransport, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
		}
		apiErr := decodeError(resp.StatusCode, body)
		c.logger.Info("Request rejected",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.Stringer("kind", apiErr.Kind))
		return apiErr
	}

	if out == nil {
		return nil
	}
	// Success bodies are not size-capped. An empty body leaves out untouched.
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &APIError{
			Kind:       KindMalformed,
			StatusCode: resp.StatusCode,
			Message:    invalidBodyMessage,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	switch {
	case req.RawBody != nil:
		body = strings.NewReader(*req.RawBody)
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if ct := req.ContentType(); ct != "" {
		httpReq.Header.Set("Content-Type", ct)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set(requestIDHeader, uuid.New().String())
	return httpReq, nil
}

// decodeError extracts the message field of an error body, falling back to a
// generic text when the body is absent, not JSON, or has no message.
func decodeError(statusCode int, body []byte) *APIError {
	var errResp domain.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return &APIError{
			Kind:       KindMalformed,
			StatusCode: statusCode,
			Message:    fallbackMessage(statusCode),
		}
	}
	return &APIError{
		Kind:       KindAPI,
		StatusCode: statusCode,
		Message:    errResp.Message,
	}
}
