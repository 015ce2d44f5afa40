package docai

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// Config holds the service connection settings.
type Config struct {
	// Endpoint is the full process URL for the configured processor.
	Endpoint string
	// APIKey authenticates requests. Supplied by the caller, typically
	// from the environment.
	APIKey string
}

// Client calls the document-understanding service. The HTTP client is
// injected so callers control timeouts, transport, and reuse; there is no
// package-level default client.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates a service client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

type processRequest struct {
	RawDocument rawDocument `json:"rawDocument"`
	FieldMask   string      `json:"fieldMask"`
}

type rawDocument struct {
	Content  string `json:"content"` // base64-encoded document bytes
	MimeType string `json:"mimeType"`
}

type processResponse struct {
	Document Document `json:"document"`
}

// Process submits document bytes for recognition and returns the
// service's result. Only the text and token fields are requested; the
// rest of the service's layout output is irrelevant to redaction.
func (c *Client) Process(ctx context.Context, content []byte, mimeType string) (*Document, error) {
	body, err := sonic.Marshal(processRequest{
		RawDocument: rawDocument{
			Content:  base64.StdEncoding.EncodeToString(content),
			MimeType: mimeType,
		},
		FieldMask: "text,pages.tokens",
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building process request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling document service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document service returned %d: %s", resp.StatusCode, respBody)
	}

	var result processResponse
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing service response: %w", err)
	}
	return &result.Document, nil
}
