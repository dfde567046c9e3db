package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/ponto/internal/storage"
)

// HeaderRequestID carries a per-request id for log correlation
const HeaderRequestID = "X-Request-ID"

// SessionObserver is notified when the backend rejects the stored session
type SessionObserver interface {
	OnSessionInvalidated(ctx context.Context)
}

// Config holds gateway settings
type Config struct {
	// BaseURL is the backend address, e.g. http://localhost:3000
	BaseURL string

	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration

	// HTTPClient overrides the client used to send requests (optional)
	HTTPClient *http.Client
}

// Gateway sends every backend request. It attaches the stored session token
// and classifies failures, clearing the session when the backend rejects it.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	creds      *storage.Credentials
	observer   SessionObserver
	logger     *slog.Logger
}

// New creates a gateway. observer may be nil.
func New(cfg Config, creds *storage.Credentials, observer SessionObserver, logger *slog.Logger) *Gateway {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Gateway{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		observer:   observer,
		logger:     logger,
	}
}

// Response is a successful backend response. Body is passed through unchanged.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type requestOptions struct {
	withoutSession bool
}

// RequestOption customizes a single request
type RequestOption func(*requestOptions)

// WithoutSession sends the request without a bearer token and without
// session invalidation on 401. Used for login, where no session exists yet.
func WithoutSession() RequestOption {
	return func(o *requestOptions) {
		o.withoutSession = true
	}
}

// Send performs an HTTP request against the backend. body, if non-nil, is
// encoded as JSON.
func (g *Gateway) Send(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	requestID := uuid.NewString()
	logger := g.logger.With(
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	req, token, err := g.newRequest(ctx, method, path, body, o)
	if err != nil {
		logger.Error("failed to build request", slog.String("error", err.Error()))
		return nil, &Error{Kind: KindRequestSetup, Method: method, Path: path, Err: err}
	}
	req.Header.Set(HeaderRequestID, requestID)

	if !o.withoutSession {
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			logger.Warn("no session token stored, request may be rejected")
		}
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		logger.Error("no response from server", slog.String("error", err.Error()))
		return nil, &Error{Kind: KindNoResponse, Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response", slog.Int("status", resp.StatusCode), slog.String("error", err.Error()))
		return nil, &Error{Kind: KindNoResponse, StatusCode: resp.StatusCode, Method: method, Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.Debug("response received",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}, nil
	}

	gerr := &Error{
		StatusCode: resp.StatusCode,
		Message:    serverMessage(respBody),
		Method:     method,
		Path:       path,
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		gerr.Kind = KindUnauthenticated
		if !o.withoutSession {
			g.invalidate(ctx, logger)
		}
	case http.StatusForbidden:
		gerr.Kind = KindForbidden
		logger.Warn("access denied")
	default:
		gerr.Kind = KindServer
		logger.Error("server returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(string(respBody), 512)),
		)
	}

	return nil, gerr
}

// invalidate clears the stored session and notifies the observer. Side
// effects run to completion even if the caller's context is cancelled.
func (g *Gateway) invalidate(ctx context.Context, logger *slog.Logger) {
	ctx = context.WithoutCancel(ctx)

	logger.Warn("session token rejected, signing out")

	if err := g.creds.ClearToken(ctx); err != nil {
		logger.Error("failed to clear session token", slog.String("error", err.Error()))
	}

	if g.observer != nil {
		g.observer.OnSessionInvalidated(ctx)
	}
}

func (g *Gateway) newRequest(ctx context.Context, method, path string, body any, o requestOptions) (*http.Request, string, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if o.withoutSession {
		return req, "", nil
	}

	token, _, err := g.creds.Token(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read session token: %w", err)
	}
	return req, token, nil
}

// Get performs a GET request and decodes the response into result
func (g *Gateway) Get(ctx context.Context, path string, result any) error {
	return g.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs a POST request and decodes the response into result
func (g *Gateway) Post(ctx context.Context, path string, body, result any) error {
	return g.do(ctx, http.MethodPost, path, body, result)
}

// Put performs a PUT request and decodes the response into result
func (g *Gateway) Put(ctx context.Context, path string, body, result any) error {
	return g.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs a DELETE request. The response is returned so callers can
// inspect the exact success status.
func (g *Gateway) Delete(ctx context.Context, path string) (*Response, error) {
	return g.Send(ctx, http.MethodDelete, path, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, result any) error {
	resp, err := g.Send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return resp.Decode(result)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
