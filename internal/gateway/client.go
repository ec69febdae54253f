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
)

type tokenContextKey string

const tokenKey = tokenContextKey("bearer_token")

// WithToken stores the caller's raw bearer token so it can be forwarded
// upstream on every request made within this context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}

	return ""
}

// Client is the thin wrapper over the remote booking backend. JSON in, JSON
// out, bearer token attached when one is present. One network attempt per
// call: no retry, no backoff, no client-side timeout beyond the caller's
// context.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// NewClientWithHTTP is used by tests to point the client at a httptest server.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) Client {
	return &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *client) Get(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodGet, path, nil, out)
}

func (c *client) Post(ctx context.Context, path string, body any, out any) error {
	return c.request(ctx, http.MethodPost, path, body, out)
}

func (c *client) Put(ctx context.Context, path string, body any, out any) error {
	return c.request(ctx, http.MethodPut, path, body, out)
}

func (c *client) Delete(ctx context.Context, path string, out any) error {
	return c.request(ctx, http.MethodDelete, path, nil, out)
}

func (c *client) request(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader

	if body != nil {

		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	// Only attach the Authorization header when the token looks like an
	// actual JWT, a bare or blank value upstream would reject anyway.
	if token := strings.TrimSpace(TokenFromContext(ctx)); token != "" && strings.Contains(token, ".") {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Backend request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("request to booking backend failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}

	return nil
}

// StatusError is a non-2xx response normalized into a single error value. The
// message prefers the server-supplied "message" then "error" field, falling
// back to a generic status-based one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

func newStatusError(statusCode int, body []byte) *StatusError {

	message := fmt.Sprintf("Request failed with status %d", statusCode)

	var errBody struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}

	if err := json.Unmarshal(body, &errBody); err == nil {
		if errBody.Message != "" {
			message = errBody.Message
		} else if errBody.Err != "" {
			message = errBody.Err
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		message = text
	}

	return &StatusError{StatusCode: statusCode, Message: message}
}
