// Package uploads sends product and post images to the asset endpoint.
// Files are validated for size and extension before any bytes leave the
// process.
package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/noizee/storefront/internal/gqlclient"
	"github.com/noizee/storefront/internal/metrics"
)

const (
	defaultTimeout  = 60 * time.Second
	defaultMaxBytes = 5 << 20 // 5MiB
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Config configures the upload client.
type Config struct {
	// Endpoint receives multipart POST requests.
	Endpoint string
	// HTTPClient executes requests; a default with a generous timeout is used
	// when nil.
	HTTPClient *http.Client
	// Tokens optionally supplies the session bearer token.
	Tokens gqlclient.TokenSource
	// MaxBytes caps the accepted file size. Zero means 5MiB.
	MaxBytes int64
}

// Result is the asset endpoint's response.
type Result struct {
	URL string `json:"url"`
}

// Client uploads images.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     gqlclient.TokenSource
	maxBytes   int64
}

// New creates an upload client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("uploads: Endpoint is required")
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("uploads: Endpoint must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("uploads: Endpoint scheme must be http or https")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &Client{endpoint: endpoint, httpClient: client, tokens: cfg.Tokens, maxBytes: maxBytes}, nil
}

// UploadImage validates and sends one image, returning its public URL.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return Result{}, fmt.Errorf("uploads: file type %q is not allowed", ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, c.maxBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("uploads: read file: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return Result{}, fmt.Errorf("uploads: file exceeds the %d byte limit", c.maxBytes)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return Result{}, fmt.Errorf("uploads: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return Result{}, fmt.Errorf("uploads: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Result{}, fmt.Errorf("uploads: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return Result{}, fmt.Errorf("uploads: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("uploads: execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("uploads: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > 512 {
			msg = msg[:512] + "...(truncated)"
		}
		return Result{}, fmt.Errorf("uploads: %s: %s", resp.Status, msg)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Result{}, fmt.Errorf("uploads: decode response: %w", err)
	}
	if result.URL == "" {
		return Result{}, fmt.Errorf("uploads: response carries no url")
	}

	metrics.RecordUploadBytes(int64(len(data)))
	return result, nil
}
