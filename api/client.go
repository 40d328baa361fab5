// Package api is the HTTP transport for the remote lodging-reservation API.
// It owns the cross-cutting request behavior the console relies on: attaching
// the bearer credential (except on exempt endpoints), normalizing bare 401
// responses to a fixed message, and reporting in-flight activity. Every call
// is attempted exactly once; retries are deliberately absent.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"stayadmin/utils"
)

// Endpoints that must never carry an Authorization header.
var exemptPaths = []string{
	"/api/V1/login",
	"/api/V1/users",
}

// DeniedMessage is forced onto 401 responses whose body carries no message of
// its own, so the console always has something to show.
const DeniedMessage = "Access denied. Please log in to continue"

// Error is a transport-level rejection from the remote API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("remote api: %d %s", e.Status, e.Message)
}

// Client issues authenticated JSON requests against the remote API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Loading *utils.LoadingState
	Logger  *zap.Logger
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, loading *utils.LoadingState, logger *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Loading: loading,
		Logger:  logger,
	}
}

type tokenKey struct{}

// WithToken stores the remote bearer credential on the context. The session
// middleware populates it per request; exempt endpoints ignore it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer credential carried by ctx, if any.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func isExempt(path string) bool {
	for _, p := range exemptPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Get issues a GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.Loading != nil {
		c.Loading.Begin()
		defer c.Loading.End()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !isExempt(path) {
		if token := TokenFromContext(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: rejectionMessage(data)}
		if resp.StatusCode == http.StatusUnauthorized && apiErr.Message == "" {
			apiErr.Message = DeniedMessage
		}
		if c.Logger != nil {
			c.Logger.Warn("remote API rejected request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("message", apiErr.Message))
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("api: failed to decode response: %w", err)
		}
	}
	return nil
}

// rejectionMessage pulls a human-readable message out of an error body. The
// remote API uses "message" or "error" depending on the endpoint.
func rejectionMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Err
}
