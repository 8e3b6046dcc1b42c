package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a ledger entry within a database transaction. Entries
// are never updated or deleted afterwards.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, type, amount, resulting_balance,
		payment_id, order_id, from_currency, to_currency, rate, converted_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.AccountID, t.Type, t.Amount, t.ResultingBalance,
		t.PaymentID, t.OrderID, t.FromCurrency, t.ToCurrency,
		t.Rate, t.ConvertedAmount, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByPaymentID fetches a deposit entry by gateway payment ID. Used as
// the durable idempotency check for deposit confirmation.
func (r *TransactionRepo) GetByPaymentID(ctx context.Context, accountID uuid.UUID, paymentID string) (*domain.Transaction, error) {
	query := `SELECT id, account_id, type, amount, resulting_balance,
		payment_id, order_id, from_currency, to_currency, rate, converted_amount, created_at
		FROM transactions WHERE account_id = $1 AND payment_id = $2`

	return scanTransaction(r.pool.QueryRow(ctx, query, accountID, paymentID))
}

// List fetches ledger entries with filtering and pagination, newest first.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("account_id = $%d", argIdx))
	args = append(args, params.AccountID)
	argIdx++

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, account_id, type, amount, resulting_balance,
		payment_id, order_id, from_currency, to_currency, rate, converted_amount, created_at
		FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.ResultingBalance,
			&t.PaymentID, &t.OrderID, &t.FromCurrency, &t.ToCurrency,
			&t.Rate, &t.ConvertedAmount, &t.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetSummary retrieves per-type aggregates for an account's ledger.
func (r *TransactionRepo) GetSummary(ctx context.Context, accountID uuid.UUID) (*ports.LedgerSummary, error) {
	query := `SELECT
		COUNT(*) AS total,
		COALESCE(SUM(amount) FILTER (WHERE type = 'deposit'), 0) AS deposited,
		COALESCE(SUM(amount) FILTER (WHERE type = 'withdraw'), 0) AS withdrawn,
		COALESCE(SUM(amount) FILTER (WHERE type = 'currency_conversion'), 0) AS converted
		FROM transactions WHERE account_id = $1`

	s := &ports.LedgerSummary{}
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&s.TotalTransactions, &s.TotalDeposited, &s.TotalWithdrawn, &s.TotalConverted,
	)
	if err != nil {
		return nil, fmt.Errorf("get ledger summary: %w", err)
	}
	return s, nil
}

// scanTransaction scans a single row into a Transaction.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.ResultingBalance,
		&t.PaymentID, &t.OrderID, &t.FromCurrency, &t.ToCurrency,
		&t.Rate, &t.ConvertedAmount, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
