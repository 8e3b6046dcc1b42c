package handler

import (
	"strconv"

	"currency-wallet/internal/adapter/http/dto"
	"currency-wallet/internal/adapter/http/middleware"
	"currency-wallet/internal/core/domain"
	"currency-wallet/internal/core/ports"
	"currency-wallet/pkg/apperror"
	"currency-wallet/pkg/money"
	"currency-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles the authenticated wallet endpoints.
type WalletHandler struct {
	walletSvc  ports.WalletService
	historySvc ports.HistoryService
	ratesSvc   ports.RatesService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, historySvc ports.HistoryService, ratesSvc ports.RatesService) *WalletHandler {
	return &WalletHandler{
		walletSvc:  walletSvc,
		historySvc: historySvc,
		ratesSvc:   ratesSvc,
	}
}

// accountID extracts the authenticated account id set by the JWT middleware.
func accountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxAccountID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// parseAmount converts a major-unit decimal string into paise.
func parseAmount(s string) (int64, error) {
	amount, err := money.ParseMajor(s)
	if err != nil {
		return 0, apperror.ErrInvalidAmount()
	}
	return amount, nil
}

// Overview handles GET /api/v1/wallet — balance plus display rates for
// the wallet's currency.
func (h *WalletHandler) Overview(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, currency, err := h.historySvc.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	overview := dto.WalletOverviewResponse{
		Balance:        balance,
		BalanceDisplay: money.FormatMinor(balance),
		Currency:       currency,
	}

	// Rates are decoration on the home view; serve the balance even if
	// the upstream is down.
	if rates, err := h.ratesSvc.DisplayRates(c.Request.Context(), currency); err == nil {
		overview.Rates = make(map[string]string, len(rates))
		for code, rate := range rates {
			overview.Rates[code] = rate.String()
		}
	}

	response.OK(c, overview)
}

// GetBalance handles GET /api/v1/wallet/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, currency, err := h.historySvc.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		Balance:        balance,
		BalanceDisplay: money.FormatMinor(balance),
		Currency:       currency,
	})
}

// Deposit handles POST /api/v1/wallet/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.walletSvc.InitiateDeposit(c.Request.Context(), id, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.DepositOrderResponse{
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		AmountDisplay: money.FormatMinor(order.Amount),
		Currency:      order.Currency,
		KeyID:         order.KeyID,
	})
}

// ConfirmDeposit handles POST /api/v1/wallet/deposit/confirm.
func (h *WalletHandler) ConfirmDeposit(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ConfirmDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.walletSvc.ConfirmDeposit(c.Request.Context(), ports.ConfirmDepositRequest{
		AccountID: id,
		PaymentID: req.PaymentID,
		OrderID:   req.OrderID,
		Amount:    amount,
		Signature: req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Withdraw handles POST /api/v1/wallet/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.walletSvc.Withdraw(c.Request.Context(), id, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Convert handles POST /api/v1/wallet/convert.
func (h *WalletHandler) Convert(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.walletSvc.Convert(c.Request.Context(), id, amount, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// ListTransactions handles GET /api/v1/wallet/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.TransactionListParams{
		AccountID: id,
		Page:      page,
		PageSize:  pageSize,
	}
	if typeStr := c.Query("type"); typeStr != "" {
		txType := domain.TransactionType(typeStr)
		switch txType {
		case domain.TransactionTypeDeposit, domain.TransactionTypeWithdraw, domain.TransactionTypeConversion:
			params.Type = &txType
		default:
			response.Error(c, apperror.Validation("unknown transaction type"))
			return
		}
	}

	items, total, err := h.historySvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.TransactionListResponse{
		Items:      make([]dto.TransactionResponse, 0, len(items)),
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: int((total + int64(params.PageSize) - 1) / int64(params.PageSize)),
	}
	for i := range items {
		resp.Items = append(resp.Items, toTransactionResponse(&items[i]))
	}

	response.OK(c, resp)
}

// GetSummary handles GET /api/v1/wallet/summary.
func (h *WalletHandler) GetSummary(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	summary, err := h.historySvc.GetSummary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SummaryResponse{
		TotalTransactions: summary.TotalTransactions,
		TotalDeposited:    summary.TotalDeposited,
		TotalWithdrawn:    summary.TotalWithdrawn,
		TotalConverted:    summary.TotalConverted,
	})
}

// toTransactionResponse maps a ledger entry to its API shape.
func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               txn.ID.String(),
		Type:             string(txn.Type),
		Amount:           txn.Amount,
		AmountDisplay:    money.FormatMinor(txn.Amount),
		ResultingBalance: txn.ResultingBalance,
		BalanceDisplay:   money.FormatMinor(txn.ResultingBalance),
		PaymentID:        txn.PaymentID,
		OrderID:          txn.OrderID,
		FromCurrency:     txn.FromCurrency,
		ToCurrency:       txn.ToCurrency,
		Rate:             txn.Rate,
		ConvertedAmount:  txn.ConvertedAmount,
		CreatedAt:        txn.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
