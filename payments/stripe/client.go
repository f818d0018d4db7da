// Package stripe is a thin client for the Stripe payment-intents API.
// It only translates to and from the wire protocol; no order logic lives here.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Intent statuses we act on. Anything else is "not done yet".
const (
	IntentSucceeded = "succeeded"
	IntentCanceled  = "canceled"
)

type Client struct {
	apiKey        string
	baseURL       string
	webhookSecret string
	httpClient    *http.Client

	// Tolerance for webhook timestamp skew. Zero disables the check.
	Tolerance time.Duration
}

// New builds a client with a bounded request timeout. baseURL is overridable
// so tests can point at a local server; empty means the live endpoint.
func New(apiKey, baseURL, webhookSecret string) *Client {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &Client{
		apiKey:        apiKey,
		baseURL:       strings.TrimRight(baseURL, "/"),
		webhookSecret: webhookSecret,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		Tolerance:     5 * time.Minute,
	}
}

type Intent struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	ClientSecret string            `json:"client_secret"`
	Metadata     map[string]string `json:"metadata"`
	Created      int64             `json:"created"`
}

// GatewayError is a decoded Stripe error response.
type GatewayError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	DeclineCode string `json:"decline_code"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("stripe: %s (%s)", e.Message, e.Type)
}

// HTTPStatus maps the error subtype to the status our API should answer with.
func (e *GatewayError) HTTPStatus() int {
	switch e.Type {
	case "card_error", "invalid_request_error":
		return http.StatusBadRequest
	case "rate_limit_error":
		return http.StatusTooManyRequests
	default:
		return http.StatusServiceUnavailable
	}
}

// CreateIntent creates a payment intent for the given amount in the smallest
// currency unit (cents).
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	return c.do(ctx, http.MethodPost, "/v1/payment_intents", strings.NewReader(form.Encode()))
}

// RetrieveIntent fetches the current state of an intent by id.
func (c *Client) RetrieveIntent(ctx context.Context, intentID string) (*Intent, error) {
	return c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(intentID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*Intent, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach stripe: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error *GatewayError `json:"error"`
		}
		if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error == nil {
			return nil, fmt.Errorf("stripe API error (%d): %s", resp.StatusCode, string(data))
		}
		return nil, errResp.Error
	}

	var intent Intent
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse stripe response: %w", err)
	}
	return &intent, nil
}
