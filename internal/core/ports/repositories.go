package ports

import (
	"context"

	"currency-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository defines persistence operations for accounts.
// Methods accepting pgx.Tx are used inside transaction blocks for
// pessimistic locking: concurrent ledger operations on the same account
// serialize on the row lock.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, newBalance int64) error
}

// TransactionRepository defines persistence for the append-only ledger.
// Create always runs inside the same database transaction as the balance
// update so the two are visible together or not at all.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByPaymentID(ctx context.Context, accountID uuid.UUID, paymentID string) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetSummary(ctx context.Context, accountID uuid.UUID) (*LedgerSummary, error)
}

// TransactionListParams holds filter + pagination for listing ledger entries.
type TransactionListParams struct {
	AccountID uuid.UUID
	Type      *domain.TransactionType
	Page      int
	PageSize  int
}

// LedgerSummary holds per-account aggregates over the ledger.
type LedgerSummary struct {
	TotalTransactions int64
	TotalDeposited    int64 // Paise
	TotalWithdrawn    int64 // Paise
	TotalConverted    int64 // Paise debited via conversions
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
