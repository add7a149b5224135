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

	"github.com/rs/zerolog/log"
)

// ErrUnauthorized is returned for any 401 from the API. The web layer turns it
// into a redirect to the login screen.
var ErrUnauthorized = errors.New("unauthorized")

// TraceIDKey is the request-context key the web layer stores its trace ID
// under. When present, outbound requests carry it as X-Trace-Id so this
// client's logs and the upstream API's logs line up.
const TraceIDKey = "trace_id"

const traceIDHeader = "X-Trace-Id"

func traceID(ctx context.Context) string {
	if id, ok := ctx.Value(TraceIDKey).(string); ok {
		return id
	}
	return ""
}

// StatusError carries the HTTP status and the human-readable message extracted
// from the API's error body.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Client is the remote listing API. All authenticated calls take the bearer
// token explicitly; the session layer owns where the token lives.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		c.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	return c.HTTP
}

// do issues a request and returns the raw response body. Non-2xx responses
// become *StatusError with the message extracted from the body.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body interface{}) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := traceID(ctx); id != "" {
		req.Header.Set(traceIDHeader, id)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := extractMessage(respBody)
		log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("trace_id", traceID(ctx)).Msg("api call failed")
		return nil, &StatusError{Code: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

// sendMultipart posts a prepared multipart body (media uploads).
func (c *Client) sendMultipart(ctx context.Context, path, token, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := traceID(ctx); id != "" {
		req.Header.Set(traceIDHeader, id)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Message: extractMessage(respBody)}
	}
	return respBody, nil
}

// extractMessage prefers a structured "message" field, falls back to the raw
// body text, then to a generic string.
func extractMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "request failed"
}
