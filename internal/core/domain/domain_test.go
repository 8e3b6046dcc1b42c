package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAccount_CanDebit(t *testing.T) {
	account := &Account{Balance: 10000}

	assert.True(t, account.CanDebit(5000))
	assert.True(t, account.CanDebit(10000), "exact balance is debitable")
	assert.False(t, account.CanDebit(10001))
	assert.False(t, account.CanDebit(0))
	assert.False(t, account.CanDebit(-100))
}

func TestTransaction_IsDebit(t *testing.T) {
	assert.False(t, (&Transaction{Type: TransactionTypeDeposit}).IsDebit())
	assert.True(t, (&Transaction{Type: TransactionTypeWithdraw}).IsDebit())
	assert.True(t, (&Transaction{Type: TransactionTypeConversion}).IsDebit())
}

func TestBuildDepositIdempotencyKey(t *testing.T) {
	accountID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	key := BuildDepositIdempotencyKey(accountID, "pay_abc123")
	assert.Equal(t, "deposit:11111111-2222-3333-4444-555555555555:pay_abc123", key)

	// Different payments under the same account never collide.
	other := BuildDepositIdempotencyKey(accountID, "pay_xyz789")
	assert.NotEqual(t, key, other)
}
