// Package backend is the typed client for the upstream storefront REST API.
// It is the only place that talks HTTP to the backend; every product payload
// it returns has been through catalog normalization.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "http://localhost:3001"

// BaseURLFromEnv resolves the backend base URL from BACKEND_URL, trimming any
// trailing slash, with a local default.
func BaseURLFromEnv() string {
	raw := strings.TrimSpace(os.Getenv("BACKEND_URL"))
	if raw == "" {
		raw = DefaultBaseURL
	}
	return strings.TrimRight(raw, "/")
}

// APIError is any failed backend interaction: Status 0 means no response was
// received at all (connection-level failure); otherwise it is the HTTP status
// with the backend's structured error message when one was present.
type APIError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return e.Message
}

// Temporary reports whether the failure happened before any response.
func (e *APIError) Temporary() bool {
	return e.Status == 0
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
}

// do performs one JSON round trip. token, params, body and out are all
// optional. Non-2xx responses become an *APIError carrying the backend's
// {error} or {message} field, or a synthesized "Request failed (status)".
func (c *Client) do(ctx context.Context, method, path string, params url.Values, token string, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, data),
			Body:    data,
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, params, token, nil, out)
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, token, body, out)
}

func (c *Client) put(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, token, body, out)
}

func (c *Client) delete(ctx context.Context, path, token string) error {
	return c.do(ctx, http.MethodDelete, path, nil, token, nil, nil)
}

// errorMessage extracts the backend's error string from a failed response
// body, accepting {error} or {message}, else synthesizing a generic one.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if status == http.StatusInternalServerError {
		return fmt.Sprintf("Server error (%d)", status)
	}
	return fmt.Sprintf("Request failed (%d)", status)
}
