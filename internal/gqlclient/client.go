// Package gqlclient is the HTTP transport to the shop's GraphQL backend.
package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/noizee/storefront/internal/metrics"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 4 << 20 // 4MiB
)

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Config configures the GraphQL client.
type Config struct {
	// Endpoint is the GraphQL endpoint URL (e.g. https://api.noizee.shop/graphql).
	Endpoint string
	// HTTPClient is used to execute requests. When nil, a default client with
	// a conservative timeout is used.
	HTTPClient *http.Client
	// Tokens optionally supplies the session bearer token.
	Tokens TokenSource
	// MaxBodyBytes caps response bodies to prevent memory exhaustion.
	MaxBodyBytes int64
}

// Request is one GraphQL operation.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// Client executes GraphQL operations over HTTP POST. Failed requests are not
// retried; callers keep showing their last good data and surface the error.
type Client struct {
	endpoint     string
	httpClient   *http.Client
	tokens       TokenSource
	maxBodyBytes int64
}

// New creates a GraphQL client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("gqlclient: Endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("gqlclient: Endpoint must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("gqlclient: Endpoint scheme must be http or https")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if client.Timeout == 0 {
		client.Timeout = defaultTimeout
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodySize
	}

	return &Client{
		endpoint:     endpoint,
		httpClient:   client,
		tokens:       cfg.Tokens,
		maxBodyBytes: maxBodyBytes,
	}, nil
}

// Do executes the operation and unmarshals the response's data field into
// out. GraphQL-level errors are returned as *ResponseError; transport and
// decode failures as plain errors. out may be nil when the caller only cares
// about success.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	start := time.Now()
	err := c.do(ctx, req, out)

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordGraphQLRequest(req.OperationName, status, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, req Request, out interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("gqlclient: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gqlclient: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gqlclient: execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return fmt.Errorf("gqlclient: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 512 {
			msg = msg[:512] + "...(truncated)"
		}
		return fmt.Errorf("gqlclient: %s: %s", resp.Status, msg)
	}

	if errs := gjson.GetBytes(body, "errors"); errs.Exists() && errs.IsArray() && len(errs.Array()) > 0 {
		return parseResponseError(errs)
	}

	if out == nil {
		return nil
	}
	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return fmt.Errorf("gqlclient: response has neither data nor errors")
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return fmt.Errorf("gqlclient: decode data: %w", err)
	}
	return nil
}

func parseResponseError(errs gjson.Result) *ResponseError {
	respErr := &ResponseError{}
	for _, e := range errs.Array() {
		entry := ErrorEntry{
			Message: e.Get("message").String(),
			Code:    e.Get("extensions.code").String(),
		}
		for _, p := range e.Get("path").Array() {
			entry.Path = append(entry.Path, p.String())
		}
		respErr.Errors = append(respErr.Errors, entry)
	}
	return respErr
}
