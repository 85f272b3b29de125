package crpt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production CRPT API endpoint.
const DefaultBaseURL = "https://ismp.crpt.ru"

// createDocumentPath is the document-creation endpoint path.
const createDocumentPath = "/api/v3/lk/documents/create"

// maxResponseBytes caps how much of a response body is read back.
const maxResponseBytes = 1 << 20

// Config contains configuration for the CRPT client.
type Config struct {
	// BaseURL is the API root. Default: DefaultBaseURL.
	BaseURL string

	// Token is the bearer token attached to each request. Optional; the
	// create endpoint rejects unauthenticated calls, but tests and staging
	// environments may not require one.
	Token string

	// Timeout is the per-request timeout. Default: 60s.
	Timeout time.Duration

	// MaxIdleConns and MaxIdleConnsPerHost size the connection pool.
	MaxIdleConns        int
	MaxIdleConnsPerHost int

	// Logger is used for request logging. Default: slog.Default().
	Logger *slog.Logger
}

// Client issues document-creation requests against the CRPT API.
// It performs no admission control of its own; see GatedClient.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// CreateResult is the outcome of a successful document creation.
type CreateResult struct {
	// Body is the raw response body, typically {"value": "<document id>"}.
	Body string
}

// APIError is a non-success response from the CRPT API. The consumed rate
// permit is not refunded on an API error.
type APIError struct {
	StatusCode int
	Body       string
}

// Error returns the formatted API failure.
func (e *APIError) Error() string {
	return fmt.Sprintf("crpt: api error: status %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a CRPT client with pooled transport.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("crpt: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 10
	}
	if cfg.MaxIdleConnsPerHost == 0 {
		cfg.MaxIdleConnsPerHost = 5
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: logger,
	}, nil
}

// CreateDocument POSTs one goods-into-circulation document.
//
// signature is the detached base64 signature; productGroup selects the goods
// category (for example "milk" or "shoes") and is sent both in the envelope
// and as the pg query parameter. A non-2xx status is returned as *APIError
// with the response body attached.
func (c *Client) CreateDocument(ctx context.Context, doc *Document, signature, productGroup string) (*CreateResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("crpt: document is required")
	}

	envelope, err := newCreateDocumentRequest(doc, signature, productGroup)
	if err != nil {
		return nil, fmt.Errorf("crpt: encoding document: %w", err)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("crpt: encoding request body: %w", err)
	}

	endpoint := c.baseURL + createDocumentPath + "?pg=" + url.QueryEscape(productGroup)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("crpt: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crpt: sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("crpt: reading response: %w", err)
	}

	c.logger.DebugContext(ctx, "create document request completed",
		"status", resp.StatusCode,
		"product_group", productGroup,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return &CreateResult{Body: string(respBody)}, nil
}
