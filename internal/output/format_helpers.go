package output

import (
	"strconv"

	"github.com/rpgo/mortgage-projector/pkg/dateutil"
	money "github.com/rpgo/mortgage-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with thousands separators.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).FormatWhole()
}

// FormatCurrencyCents formats a decimal as US dollars and cents with thousands separators.
func FormatCurrencyCents(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatPayoff describes when the loan is retired, e.g. "Year 10.3 (month 123)".
func FormatPayoff(month int) string {
	if month <= 0 {
		return "not paid off"
	}
	return dateutil.YearLabel(month) + " (month " + intToString(month) + ")"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
