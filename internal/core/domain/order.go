package domain

import (
	"time"

	"github.com/google/uuid"
)

// DepositOrder is the snapshot of a payment-gateway order created at
// deposit initiation. It lives in Redis until the client completes
// checkout and confirms, or the TTL expires. No balance mutation happens
// before confirmation.
type DepositOrder struct {
	OrderID   string    `json:"order_id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    int64     `json:"amount"`   // Paise
	Currency  string    `json:"currency"` // Fixed "INR"
	KeyID     string    `json:"key_id"`   // Public gateway key for client checkout
	CreatedAt time.Time `json:"created_at"`
}
