package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the kind of ledger event.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdraw   TransactionType = "withdraw"
	TransactionTypeConversion TransactionType = "currency_conversion"
)

// Transaction is an immutable, append-only ledger entry. Exactly one is
// written per successful balance mutation, carrying the balance as it
// stood immediately after the operation.
type Transaction struct {
	ID               uuid.UUID       `json:"id"`
	AccountID        uuid.UUID       `json:"account_id"`
	Type             TransactionType `json:"type"`
	Amount           int64           `json:"amount"`            // Paise, meaning depends on Type
	ResultingBalance int64           `json:"resulting_balance"` // Paise, balance after this entry

	// Deposit fields
	PaymentID *string `json:"payment_id,omitempty"`
	OrderID   *string `json:"order_id,omitempty"`

	// Conversion fields. Rate is kept as decimal text to round-trip
	// through storage without float drift; ConvertedAmount is in the
	// target currency's minor units and is recorded for audit only.
	FromCurrency    *string `json:"from_currency,omitempty"`
	ToCurrency      *string `json:"to_currency,omitempty"`
	Rate            *string `json:"rate,omitempty"`
	ConvertedAmount *int64  `json:"converted_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsDebit reports whether this entry reduced the balance.
func (t *Transaction) IsDebit() bool {
	return t.Type == TransactionTypeWithdraw || t.Type == TransactionTypeConversion
}

// BuildDepositIdempotencyKey builds the cache key under which a confirmed
// deposit's ledger entry is memoized, scoped per account and payment.
func BuildDepositIdempotencyKey(accountID uuid.UUID, paymentID string) string {
	return "deposit:" + accountID.String() + ":" + paymentID
}
