package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PaymentRequest is the payload dispatched to a mobile money provider.
type PaymentRequest struct {
	Reference string `json:"reference"`
	Phone     string `json:"phone"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// PaymentResponse is the synchronous acknowledgement from the provider.
// The authoritative outcome arrives later on the callback route.
type PaymentResponse struct {
	ProviderRef string `json:"providerRef"`
	Status      string `json:"status"`
}

// Client dispatches money movement requests to a payment provider.
type Client interface {
	RequestCollection(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error)
	RequestPayout(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error)
}

// HTTPClient talks to a provider gateway over JSON HTTP.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a provider client for the given gateway base URL.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// RequestCollection asks the provider to collect funds from the punter's
// mobile money account (deposit leg).
func (c *HTTPClient) RequestCollection(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error) {
	return c.post(ctx, "/collections", req)
}

// RequestPayout asks the provider to push funds to the punter's mobile money
// account (withdrawal leg).
func (c *HTTPClient) RequestPayout(ctx context.Context, req *PaymentRequest) (*PaymentResponse, error) {
	return c.post(ctx, "/payouts", req)
}

func (c *HTTPClient) post(ctx context.Context, path string, req *PaymentRequest) (*PaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(payload))
	}

	var out PaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &out, nil
}
