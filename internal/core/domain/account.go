package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered wallet user. The balance is held in a
// single fixed currency (INR) and stored in paise; it is mutated only by
// wallet service operations and never goes negative.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose
	Balance      int64     `json:"balance"` // Paise
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanDebit reports whether the account holds at least amount paise.
func (a *Account) CanDebit(amount int64) bool {
	return amount > 0 && amount <= a.Balance
}
