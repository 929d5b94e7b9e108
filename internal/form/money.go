package form

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.BrazilianPortuguese)

// thousandsOnly matches "1.500" or "12.345.678": dots grouping thousands
// with no decimal part.
var thousandsOnly = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// FormatMoney renders an amount in reais, e.g. "R$ 1.234,50".
func FormatMoney(d decimal.Decimal) string {
	return "R$ " + moneyPrinter.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// ParseMoney reads an amount typed by the user. "1.234,50", "1.500" and
// "1234.50" are accepted; blank input is zero. Without a comma, dots are
// thousands separators only when every group after the first has three
// digits, so "1.5" stays one and a half.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.Zero, nil
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	return decimal.NewFromString(s)
}
