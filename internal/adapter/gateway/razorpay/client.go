// Package razorpay talks to the Razorpay Orders API. Amounts cross the
// wire in minor units (paise); the wallet already holds paise so no
// conversion happens here beyond fixing the currency to INR.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"currency-wallet/config"
	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"

	"github.com/rs/zerolog"
)

const orderCurrency = "INR"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.PaymentGateway against the Razorpay REST API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient HTTPClient
	sigSvc     ports.SignatureService
	log        zerolog.Logger
}

// NewClient creates a Razorpay gateway client.
func NewClient(cfg config.RazorpayConfig, httpClient HTTPClient, sigSvc ports.SignatureService, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: httpClient,
		sigSvc:     sigSvc,
		log:        log,
	}
}

type orderRequest struct {
	Amount         int64  `json:"amount"` // Minor units (paise)
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt,omitempty"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment order for amount paise with automatic
// capture, mirroring the gateway's checkout contract.
func (c *Client) CreateOrder(ctx context.Context, amount int64, receipt string) (*domain.DepositOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:         amount,
		Currency:       orderCurrency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("razorpay order creation failed")
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order orderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway response missing order id")
	}

	c.log.Info().
		Str("order_id", order.ID).
		Int64("amount", order.Amount).
		Msg("razorpay order created")

	return &domain.DepositOrder{
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		KeyID:     c.keyID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// VerifyPaymentSignature checks the checkout signature Razorpay issues
// after a captured payment: HMAC-SHA256 of "order_id|payment_id" under
// the key secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return c.sigSvc.Verify(c.keySecret, orderID+"|"+paymentID, signature)
}
