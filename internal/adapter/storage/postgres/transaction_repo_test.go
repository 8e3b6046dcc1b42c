package postgres

import (
	"context"
	"testing"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeposit(accountID uuid.UUID) *domain.Transaction {
	paymentID := "pay_test123"
	orderID := "order_test123"
	return &domain.Transaction{
		ID:               uuid.New(),
		AccountID:        accountID,
		Type:             domain.TransactionTypeDeposit,
		Amount:           25000,
		ResultingBalance: 75000,
		PaymentID:        &paymentID,
		OrderID:          &orderID,
		CreatedAt:        time.Now().UTC().Truncate(time.Microsecond),
	}
}

func transactionColumns() []string {
	return []string{"id", "account_id", "type", "amount", "resulting_balance",
		"payment_id", "order_id", "from_currency", "to_currency", "rate", "converted_amount", "created_at"}
}

func transactionRow(txn *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(transactionColumns()).AddRow(
		txn.ID, txn.AccountID, txn.Type, txn.Amount, txn.ResultingBalance,
		txn.PaymentID, txn.OrderID, txn.FromCurrency, txn.ToCurrency,
		txn.Rate, txn.ConvertedAmount, txn.CreatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestDeposit(uuid.New())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(txn.ID, txn.AccountID, txn.Type, txn.Amount, txn.ResultingBalance,
			txn.PaymentID, txn.OrderID, txn.FromCurrency, txn.ToCurrency,
			txn.Rate, txn.ConvertedAmount, txn.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), tx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByPaymentID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestDeposit(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE account_id .+ payment_id").
		WithArgs(txn.AccountID, *txn.PaymentID).
		WillReturnRows(transactionRow(txn))

	result, err := repo.GetByPaymentID(context.Background(), txn.AccountID, *txn.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.Equal(t, txn.Amount, result.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByPaymentID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	accountID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE account_id .+ payment_id").
		WithArgs(accountID, "pay_unknown").
		WillReturnRows(pgxmock.NewRows(transactionColumns()))

	result, err := repo.GetByPaymentID(context.Background(), accountID, "pay_unknown")
	require.NoError(t, err)
	assert.Nil(t, result, "unknown payment should return nil, nil")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	accountID := uuid.New()
	txn := newTestDeposit(accountID)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(accountID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM transactions .+ ORDER BY created_at DESC").
		WithArgs(accountID, 20, 0).
		WillReturnRows(transactionRow(txn))

	items, total, err := repo.List(context.Background(), ports.TransactionListParams{
		AccountID: accountID,
		Page:      1,
		PageSize:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, txn.ID, items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_List_TypeFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	accountID := uuid.New()
	txType := domain.TransactionTypeWithdraw

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(accountID, txType).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("SELECT .+ FROM transactions .+ ORDER BY created_at DESC").
		WithArgs(accountID, txType, 10, 10).
		WillReturnRows(pgxmock.NewRows(transactionColumns()))

	items, total, err := repo.List(context.Background(), ports.TransactionListParams{
		AccountID: accountID,
		Type:      &txType,
		Page:      2,
		PageSize:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetSummary(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	accountID := uuid.New()

	mock.ExpectQuery("SELECT").
		WithArgs(accountID).
		WillReturnRows(pgxmock.NewRows([]string{"total", "deposited", "withdrawn", "converted"}).
			AddRow(int64(5), int64(100000), int64(25000), int64(10000)))

	summary, err := repo.GetSummary(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.TotalTransactions)
	assert.Equal(t, int64(100000), summary.TotalDeposited)
	assert.Equal(t, int64(25000), summary.TotalWithdrawn)
	assert.Equal(t, int64(10000), summary.TotalConverted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
