package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edumanage/edudash/internal/log"
)

// Client is the thin HTTP client for the hosted backend: auth endpoints plus
// read-only table queries. All persistence and business rules live behind it.
type Client struct {
	BaseURL    string
	AnonKey    string
	HTTPClient *http.Client

	logger *log.Logger

	// mu guards token: fetch goroutines read it while a re-sign-in writes it.
	mu    sync.RWMutex
	token string
}

// NewClient creates a new backend client.
func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		AnonKey: anonKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log.DefaultLogger(),
	}
}

// WithTimeout overrides the default request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.HTTPClient.Timeout = d
	return c
}

// WithLogger overrides the default logger.
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// SetToken sets the user access token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the user access token; requests fall back to the anon key.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current user access token, empty when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// doRequest performs an HTTP request with the anon key and, when present,
// the user's bearer token.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("apikey", c.AnonKey)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.AnonKey)
	}

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	return resp, nil
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope covers the error body shapes the backend produces.
type errorEnvelope struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e errorEnvelope) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// parseResponse parses the response body into the target struct
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		apiErr := &APIError{StatusCode: resp.StatusCode}

		var envelope errorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.text() != "" {
			apiErr.Message = envelope.text()
		} else {
			apiErr.Message = string(body)
		}

		return apiErr
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
