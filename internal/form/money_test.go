package form

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := map[string]string{
		"":           "0",
		"10":         "10",
		"1234.5":     "1234.5",
		"1.234,50":   "1234.5",
		"R$ 99,90":   "99.9",
		"  12,00   ": "12",
		"1.500":      "1500",
		"12.345.678": "12345678",
		"R$ 1.500":   "1500",
		"1.5":        "1.5",
		"1.50":       "1.5",
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		require.True(t, got.Equal(decimal.RequireFromString(want)), "%q -> %s", in, got)
	}

	_, err := ParseMoney("abc")
	require.Error(t, err)
}

func TestFormatMoneyPrefix(t *testing.T) {
	require.Contains(t, FormatMoney(decimal.NewFromInt(10)), "R$ ")
}

func TestParseMoneyReadsFormattedAmount(t *testing.T) {
	total := decimal.NewFromInt(1500)
	shown := FormatMoney(total)
	require.Contains(t, shown, "1.500,00")

	// typing back what the screen shows, with or without cents
	for _, typed := range []string{"1.500,00", "1.500"} {
		got, err := ParseMoney(typed)
		require.NoError(t, err)
		require.True(t, got.Equal(total), "%q -> %s", typed, got)
	}
}
