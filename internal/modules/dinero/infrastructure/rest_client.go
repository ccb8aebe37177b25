package infrastructure

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

	"golang.org/x/oauth2"

	"dineroCheck/internal/modules/dinero/application/port"
	"dineroCheck/internal/modules/dinero/domain"
)

const (
	errorBodyLimit    = 2048
	responseBodyLimit = 1 << 20
)

// RESTClient wraps http.Client with base URL handling so the Dinero adapters share one way of
// building, sending and checking requests.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

// NewRESTClient builds a client for baseURL. A nil client gets a fresh http.Client with the
// given timeout; a provided client is used as configured by the caller.
func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

// NewRequest resolves endpoint against the base URL. An empty endpoint targets the base URL itself.
func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := c.baseURL
	if trimmed := strings.TrimLeft(strings.TrimSpace(endpoint), "/"); trimmed != "" {
		target += "/" + trimmed
	}
	return http.NewRequestWithContext(ctx, method, target, body)
}

// NewAPIRequest builds an authenticated JSON request against the Dinero API. A nil payload sends no body.
func (c *RESTClient) NewAPIRequest(ctx context.Context, method, endpoint string, creds domain.Credentials, token *oauth2.Token, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", creds.APIKey)
	if token != nil {
		req.Header.Set("Authorization", bearerTokenType+" "+token.AccessToken)
	}
	return req, nil
}

// Execute sends req and returns the body of a 2xx response. Transport failures and other statuses
// are reported as port.ErrUpstreamRequestFailed; operation names the step for messages.
func (c *RESTClient) Execute(req *http.Request, operation string) ([]byte, error) {
	slog.Debug("dinero request", slog.String("operation", operation), slog.String("method", req.Method), slog.String("url", req.URL.String()))

	res, err := c.client.Do(req)
	if err != nil {
		slog.Error("dinero request error", slog.String("operation", operation), slog.String("url", req.URL.String()), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w: %w", operation, port.ErrUpstreamRequestFailed, err)
	}
	defer res.Body.Close()
	slog.Debug("dinero response", slog.String("operation", operation), slog.Int("status", res.StatusCode))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		excerpt, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		body := strings.TrimSpace(string(excerpt))
		slog.Error("dinero unexpected status", slog.String("operation", operation), slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", body))
		return nil, &StatusError{Operation: operation, Status: res.StatusCode, Body: body}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, responseBodyLimit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w: %w", operation, port.ErrUpstreamRequestFailed, err)
	}
	if len(body) > responseBodyLimit {
		slog.Error("dinero response too large", slog.String("operation", operation), slog.String("url", req.URL.String()), slog.Int("limit", responseBodyLimit))
		return nil, fmt.Errorf("%s: %w: response body exceeds %d bytes", operation, port.ErrUpstreamRequestFailed, responseBodyLimit)
	}
	return body, nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 30 * time.Second
	}
	return value
}
