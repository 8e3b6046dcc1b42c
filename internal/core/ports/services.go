package ports

import (
	"context"
	"time"

	"currency-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT session token operations.
type TokenService interface {
	Generate(accountID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AccountID uuid.UUID
	Email     string
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// Cache is a byte cache with TTL, backed by Redis. Used for the deposit
// idempotency fast path and for display-path rate/news caching.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// DepositOrderStore keeps pending gateway orders between initiation and
// confirmation.
type DepositOrderStore interface {
	Save(ctx context.Context, order *domain.DepositOrder, ttl time.Duration) error
	Get(ctx context.Context, orderID string) (*domain.DepositOrder, error) // nil, nil on miss
	// Claim atomically fetches and removes an order so it can be
	// confirmed at most once. nil, nil if absent.
	Claim(ctx context.Context, orderID string) (*domain.DepositOrder, error)
}

// ExchangeRateClient fetches point-in-time FX rates for a base currency.
// The conversion path always calls this fresh; no staleness contract.
type ExchangeRateClient interface {
	GetRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// PaymentGateway creates payment orders with the external processor and
// verifies checkout signatures.
type PaymentGateway interface {
	// CreateOrder registers an order for amount paise (fixed INR) and
	// returns its gateway details. receipt is an opaque caller reference.
	CreateOrder(ctx context.Context, amount int64, receipt string) (*domain.DepositOrder, error)
	// VerifyPaymentSignature checks the checkout signature the gateway
	// hands to the client after a captured payment.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// NewsClient fetches headline articles for the home feed.
type NewsClient interface {
	Headlines(ctx context.Context, query string) ([]domain.Article, error)
}

// --- Service Ports (Business Logic) ---

// WalletService is the core ledger: every operation validates, mutates
// the persisted balance and appends a transaction record as one atomic
// unit, returning the written ledger entry.
type WalletService interface {
	InitiateDeposit(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.DepositOrder, error)
	ConfirmDeposit(ctx context.Context, req ConfirmDepositRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.Transaction, error)
	Convert(ctx context.Context, accountID uuid.UUID, amount int64, targetCurrency string) (*domain.Transaction, error)
}

// ConfirmDepositRequest holds validated input for deposit confirmation.
type ConfirmDepositRequest struct {
	AccountID uuid.UUID
	PaymentID string
	OrderID   string
	Amount    int64 // Paise
	Signature string
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for account registration.
type RegisterRequest struct {
	Email    string
	Phone    string
	Password string
}

// HistoryService reads balances and the transaction ledger.
type HistoryService interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (int64, string, error) // balance, currency, error
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetSummary(ctx context.Context, accountID uuid.UUID) (*LedgerSummary, error)
}

// RatesService serves the read-only display paths: exchange rates for an
// arbitrary base and news headlines, both behind a short cache.
type RatesService interface {
	DisplayRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
	Headlines(ctx context.Context, query string) ([]domain.Article, error)
}
