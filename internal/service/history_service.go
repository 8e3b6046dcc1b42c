package service

import (
	"context"
	"fmt"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/pkg/apperror"

	"github.com/google/uuid"
)

// HistoryServiceImpl implements ports.HistoryService.
type HistoryServiceImpl struct {
	accountRepo  ports.AccountRepository
	txRepo       ports.TransactionRepository
	baseCurrency string
}

// NewHistoryService creates a new HistoryServiceImpl.
func NewHistoryService(accountRepo ports.AccountRepository, txRepo ports.TransactionRepository, baseCurrency string) *HistoryServiceImpl {
	return &HistoryServiceImpl{
		accountRepo:  accountRepo,
		txRepo:       txRepo,
		baseCurrency: baseCurrency,
	}
}

// GetBalance returns the current balance in minor units and its currency.
func (s *HistoryServiceImpl) GetBalance(ctx context.Context, accountID uuid.UUID) (int64, string, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return 0, "", apperror.InternalError(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return 0, "", apperror.ErrNotFound("account")
	}
	return account.Balance, s.baseCurrency, nil
}

// ListTransactions returns one page of the account's ledger, newest
// first, with the total count for pagination.
func (s *HistoryServiceImpl) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	transactions, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return transactions, total, nil
}

// GetSummary returns per-type aggregates over the account's ledger.
func (s *HistoryServiceImpl) GetSummary(ctx context.Context, accountID uuid.UUID) (*ports.LedgerSummary, error) {
	summary, err := s.txRepo.GetSummary(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger summary: %w", err))
	}
	return summary, nil
}
