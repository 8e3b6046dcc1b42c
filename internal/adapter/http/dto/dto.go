package dto

// Amounts cross the API boundary as decimal strings in major units
// ("250.00" rupees); handlers convert them to paise before touching the
// ledger. Responses carry both the raw minor-unit integer and a
// formatted display string.

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Phone    string `json:"phone" binding:"required,min=7,max=20"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for account login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// DepositRequest initiates a payment-gateway deposit.
type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// DepositOrderResponse describes the created gateway order the client
// needs to launch checkout.
type DepositOrderResponse struct {
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Currency      string `json:"currency"`
	KeyID         string `json:"key_id"`
}

// ConfirmDepositRequest confirms a completed checkout.
type ConfirmDepositRequest struct {
	OrderID   string `json:"order_id" binding:"required,safe_id"`
	PaymentID string `json:"payment_id" binding:"required,safe_id"`
	Signature string `json:"signature" binding:"omitempty,max=128"`
	Amount    string `json:"amount" binding:"required"`
}

// WithdrawRequest is the request body for withdrawals.
type WithdrawRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ConvertRequest is the request body for currency conversion.
type ConvertRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3,alpha"`
}

// TransactionResponse is the response body for ledger entries.
type TransactionResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Amount           int64   `json:"amount"`
	AmountDisplay    string  `json:"amount_display"`
	ResultingBalance int64   `json:"resulting_balance"`
	BalanceDisplay   string  `json:"balance_display"`
	PaymentID        *string `json:"payment_id,omitempty"`
	OrderID          *string `json:"order_id,omitempty"`
	FromCurrency     *string `json:"from_currency,omitempty"`
	ToCurrency       *string `json:"to_currency,omitempty"`
	Rate             *string `json:"rate,omitempty"`
	ConvertedAmount  *int64  `json:"converted_amount,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// BalanceResponse is the response for balance query.
type BalanceResponse struct {
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
	Currency       string `json:"currency"`
}

// WalletOverviewResponse is the home view: balance plus display rates
// for the wallet's own currency.
type WalletOverviewResponse struct {
	Balance        int64             `json:"balance"`
	BalanceDisplay string            `json:"balance_display"`
	Currency       string            `json:"currency"`
	Rates          map[string]string `json:"rates,omitempty"`
}

// TransactionListResponse wraps paginated ledger entries.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// SummaryResponse is the response for per-type ledger aggregates.
type SummaryResponse struct {
	TotalTransactions int64 `json:"total_transactions"`
	TotalDeposited    int64 `json:"total_deposited"`
	TotalWithdrawn    int64 `json:"total_withdrawn"`
	TotalConverted    int64 `json:"total_converted"`
}

// RatesResponse is the response for the exchange rate display endpoint.
type RatesResponse struct {
	Base  string            `json:"base"`
	Rates map[string]string `json:"rates"`
}

// ArticleResponse is a single news headline.
type ArticleResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}
