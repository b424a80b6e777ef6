package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config holds payment gateway configuration
type Config struct {
	BaseURL    string
	MerchantID string
	SecretKey  string
	Timeout    time.Duration
}

// Client is the payment gateway HTTP client
type Client struct {
	httpClient *http.Client
	config     Config
}

// SessionRequest represents a payment session creation request
type SessionRequest struct {
	BookingID   string  `json:"booking_id"`
	SpaceID     string  `json:"space_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	ReturnURL   string  `json:"return_url"`
	CancelURL   string  `json:"cancel_url"`
}

// SessionResponse represents a payment session creation response
type SessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionURL string `json:"session_url"`
	Status     string `json:"status"`
}

// NewClient creates a new payment gateway client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

// CreateSession initiates a payment session and returns the checkout URL
func (c *Client) CreateSession(ctx context.Context, req SessionRequest) (*SessionResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("validation error: amount must be > 0")
	}
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("validation error: booking_id must be non-empty")
	}
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("paygate client is not initialized")
	}
	if strings.TrimSpace(c.config.BaseURL) == "" {
		return nil, fmt.Errorf("paygate config error: base_url is empty")
	}
	if strings.TrimSpace(c.config.MerchantID) == "" {
		return nil, fmt.Errorf("paygate config error: merchant_id is empty")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paygate request: %w", err)
	}

	base := strings.TrimRight(c.config.BaseURL, "/")
	url := base + "/api/v1/sessions"

	timeout := c.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("paygate api call failed: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.MerchantID)
	httpReq.Header.Set("X-Signature", Sign(c.config.SecretKey, jsonData))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paygate api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("paygate api call failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paygate api returned non-2xx status: %d, body: %s", resp.StatusCode, string(body))
	}

	var out SessionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse paygate response: %w", err)
	}

	return &out, nil
}
