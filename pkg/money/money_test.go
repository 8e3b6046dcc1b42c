package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMajor(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"100.00", 10000},
		{"100", 10000},
		{"0.01", 1},
		{"1234.56", 123456},
		{"-50", -5000},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseMajor(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseMajor_Errors(t *testing.T) {
	for _, input := range []string{"", "abc", "10.005", "1e", "10,00"} {
		_, err := ParseMajor(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatMinor(t *testing.T) {
	assert.Equal(t, "123.45", FormatMinor(12345))
	assert.Equal(t, "0.01", FormatMinor(1))
	assert.Equal(t, "0.00", FormatMinor(0))
	assert.Equal(t, "500.00", FormatMinor(50000))
	assert.Equal(t, "-12.50", FormatMinor(-1250))
}

func TestConvert(t *testing.T) {
	rate := decimal.NewFromFloat(0.012)

	// 100.00 INR at 0.012 -> 1.20 USD -> 120 cents
	assert.Equal(t, int64(120), Convert(10000, rate))

	// Rounds half-up at the minor unit
	oddRate, err := decimal.NewFromString("0.012345")
	require.NoError(t, err)
	// 100.00 * 0.012345 = 1.2345 -> 123.45 cents -> 123
	assert.Equal(t, int64(123), Convert(10000, oddRate))
}

func TestConvert_IdentityRate(t *testing.T) {
	assert.Equal(t, int64(12345), Convert(12345, decimal.NewFromInt(1)))
}
