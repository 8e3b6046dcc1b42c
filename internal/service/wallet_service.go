package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/pkg/apperror"
	"currency-wallet/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// WalletConfig holds the tunables of the ledger service.
type WalletConfig struct {
	BaseCurrency string // Currency the balance is held in
	OrderTTL     time.Duration
	// VerifySignature gates the gateway checkout signature and amount
	// checks on deposit confirmation. Off by default: confirmations
	// then trust the client-reported payment, matching the behavior of
	// gateways integrated in test mode without webhook delivery.
	VerifySignature bool
}

// WalletServiceImpl implements ports.WalletService. Every balance
// mutation runs inside one database transaction with the account row
// locked, so concurrent operations on the same account serialize and
// the ledger entry commits together with the balance or not at all.
type WalletServiceImpl struct {
	accountRepo ports.AccountRepository
	txRepo      ports.TransactionRepository
	orderStore  ports.DepositOrderStore
	idemCache   ports.Cache
	gateway     ports.PaymentGateway
	fxClient    ports.ExchangeRateClient
	transactor  ports.DBTransactor
	cfg         WalletConfig
	log         zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	accountRepo ports.AccountRepository,
	txRepo ports.TransactionRepository,
	orderStore ports.DepositOrderStore,
	idemCache ports.Cache,
	gateway ports.PaymentGateway,
	fxClient ports.ExchangeRateClient,
	transactor ports.DBTransactor,
	cfg WalletConfig,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		orderStore:  orderStore,
		idemCache:   idemCache,
		gateway:     gateway,
		fxClient:    fxClient,
		transactor:  transactor,
		cfg:         cfg,
		log:         log,
	}
}

// InitiateDeposit registers a payment order with the gateway for the
// given amount. No balance change happens here; the order waits in the
// order store until ConfirmDeposit or TTL expiry.
func (s *WalletServiceImpl) InitiateDeposit(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.DepositOrder, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	receipt := fmt.Sprintf("dep-%s-%d", accountID.String()[:8], time.Now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, amount, receipt)
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(fmt.Errorf("create order: %w", err))
	}
	order.AccountID = accountID

	if err := s.orderStore.Save(ctx, order, s.cfg.OrderTTL); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save deposit order: %w", err))
	}

	s.log.Info().
		Str("order_id", order.OrderID).
		Str("account_id", accountID.String()).
		Int64("amount", amount).
		Msg("deposit initiated")

	return order, nil
}

// ConfirmDeposit credits the account after checkout completes. Replays
// of the same payment id return the original ledger entry: a Redis fast
// path first, then the ledger itself as the durable check.
func (s *WalletServiceImpl) ConfirmDeposit(ctx context.Context, req ports.ConfirmDepositRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.PaymentID == "" {
		return nil, apperror.Validation("payment_id is required")
	}

	idempKey := domain.BuildDepositIdempotencyKey(req.AccountID, req.PaymentID)

	// Layer 1: Redis idempotency check
	cached, err := s.idemCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to ledger")
	}
	if cached != nil {
		return s.unmarshalCachedTransaction(cached)
	}

	// Layer 2: ledger idempotency check
	existing, err := s.txRepo.GetByPaymentID(ctx, req.AccountID, req.PaymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("ledger idempotency check: %w", err))
	}
	if existing != nil {
		return existing, nil
	}

	// Claim the pending order so it cannot confirm twice.
	order, err := s.orderStore.Claim(ctx, req.OrderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("claim deposit order: %w", err))
	}

	if s.cfg.VerifySignature {
		if order == nil {
			return nil, apperror.ErrOrderNotFound()
		}
		if order.AccountID != req.AccountID {
			return nil, apperror.ErrOrderNotFound()
		}
		if !s.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
			return nil, apperror.ErrInvalidPaymentSignature()
		}
		if order.Amount != req.Amount {
			return nil, apperror.ErrAmountMismatch()
		}
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get account
	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, req.AccountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	newBalance := account.Balance + req.Amount

	now := time.Now().UTC()
	paymentID := req.PaymentID
	orderID := req.OrderID
	txn := &domain.Transaction{
		ID:               uuid.New(),
		AccountID:        req.AccountID,
		Type:             domain.TransactionTypeDeposit,
		Amount:           req.Amount,
		ResultingBalance: newBalance,
		PaymentID:        &paymentID,
		OrderID:          &orderID,
		CreatedAt:        now,
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: cache in Redis (best-effort)
	if respJSON, err := json.Marshal(txn); err == nil {
		if err := s.idemCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
			s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache deposit confirmation")
		}
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", req.AccountID.String()).
		Str("payment_id", req.PaymentID).
		Int64("amount", req.Amount).
		Msg("deposit confirmed")

	return txn, nil
}

// Withdraw debits the account, rejecting amounts the balance cannot
// cover.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, accountID uuid.UUID, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get account
	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	if !account.CanDebit(amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	newBalance := account.Balance - amount

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:               uuid.New(),
		AccountID:        accountID,
		Type:             domain.TransactionTypeWithdraw,
		Amount:           amount,
		ResultingBalance: newBalance,
		CreatedAt:        now,
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", accountID.String()).
		Int64("amount", amount).
		Msg("withdrawal processed")

	return txn, nil
}

// Convert debits amount from the base-currency balance and records the
// equivalent in targetCurrency at the rate in effect right now. The
// rate is fetched before the critical section so a slow upstream never
// holds the row lock.
func (s *WalletServiceImpl) Convert(ctx context.Context, accountID uuid.UUID, amount int64, targetCurrency string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	target := strings.ToUpper(strings.TrimSpace(targetCurrency))
	if target == "" || target == s.cfg.BaseCurrency {
		return nil, apperror.ErrUnsupportedCurrency(targetCurrency)
	}

	rates, err := s.fxClient.GetRates(ctx, s.cfg.BaseCurrency)
	if err != nil {
		return nil, apperror.ErrRateLookupFailed(fmt.Errorf("fetch rates: %w", err))
	}
	rate, ok := rates[target]
	if !ok {
		return nil, apperror.ErrUnsupportedCurrency(target)
	}

	converted := money.Convert(amount, rate)

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get account
	account, err := s.accountRepo.GetByIDForUpdate(ctx, dbTx, accountID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("account")
	}

	if !account.CanDebit(amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	newBalance := account.Balance - amount

	now := time.Now().UTC()
	from := s.cfg.BaseCurrency
	rateStr := rate.String()
	txn := &domain.Transaction{
		ID:               uuid.New(),
		AccountID:        accountID,
		Type:             domain.TransactionTypeConversion,
		Amount:           amount,
		ResultingBalance: newBalance,
		FromCurrency:     &from,
		ToCurrency:       &target,
		Rate:             &rateStr,
		ConvertedAmount:  &converted,
		CreatedAt:        now,
	}

	if err := s.accountRepo.UpdateBalance(ctx, dbTx, account.ID, newBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("account_id", accountID.String()).
		Str("target", target).
		Str("rate", rateStr).
		Int64("amount", amount).
		Int64("converted", converted).
		Msg("conversion processed")

	return txn, nil
}

// unmarshalCachedTransaction deserializes a cached ledger entry.
func (s *WalletServiceImpl) unmarshalCachedTransaction(data []byte) (*domain.Transaction, error) {
	txn := &domain.Transaction{}
	if err := json.Unmarshal(data, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached tx: %w", err))
	}
	return txn, nil
}
