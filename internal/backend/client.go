package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ujjiboni/dashboard/internal/config"
	"github.com/ujjiboni/dashboard/internal/domain"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for the signed-in session.
type TokenSource interface {
	Token() string
}

// Envelope is the wrapper every backend response shares.
type Envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
}

// Client talks to the cooperative's REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	readRetries    int
	onUnauthorized func(ctx context.Context)
}

func NewClient(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.Backend.URL, "/"),
		httpClient:  &http.Client{Timeout: cfg.GetBackendTimeout()},
		tokens:      tokens,
		readRetries: cfg.Backend.ReadRetries,
	}
}

// OnUnauthorized registers fn to run whenever the backend answers 401.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.onUnauthorized = fn
}

type request struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	skipAuth bool
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: body}, out)
}

// do sends req and decodes the envelope payload into out. Only GETs are
// retried, and only on transport errors and 5xx.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	attempts := 1
	if req.method == http.MethodGet && c.readRetries > 0 {
		attempts += c.readRetries
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = c.send(ctx, req, out)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			break
		}
		if attempt < attempts {
			log.Printf("backend: retrying %s %s after error: %v", req.method, req.path, err)
		}
	}

	// A 401 on an unauthenticated call is a credential failure, not a
	// revoked session.
	if !req.skipAuth && errors.Is(err, customError.ErrUnauthorized) && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
	return err
}

func (c *Client) send(ctx context.Context, req request, out interface{}) error {
	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", req.path, err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(RequestIDHeader, requestID(ctx))
	if !req.skipAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", customError.ErrBackendUnavailable, req.method, req.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", customError.ErrBackendUnavailable, req.path, err)
	}
	log.Printf("backend: %s %s %d %s", req.method, req.path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env Envelope
		_ = json.Unmarshal(data, &env)
		return customError.NewRequestError(resp.StatusCode, env.Message)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", customError.ErrUnexpectedResponse, req.path, err)
	}
	return nil
}

func retryable(err error) bool {
	return errors.Is(err, customError.ErrBackendUnavailable)
}

type requestIDKey struct{}

// WithRequestID makes outgoing backend calls reuse an inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
