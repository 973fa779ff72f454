package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report: summary, assumptions and
// the full yearly table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(p *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "MORTGAGE AMORTIZATION & NET WORTH PROJECTION")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(p) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeLoanSummary(&buf, p)
	writeYearlyTable(&buf, p)
	return buf.Bytes(), nil
}

func writeLoanSummary(buf *bytes.Buffer, p *domain.Projection) {
	a := AnalyzeProjection(p)
	fmt.Fprintln(buf, "LOAN SUMMARY")
	fmt.Fprintln(buf, "============")
	fmt.Fprintf(buf, "Monthly Payment:      %s", FormatCurrency(p.Summary.MonthlyPayment))
	if p.Input.ExtraMonthlyPayment.IsPositive() {
		fmt.Fprintf(buf, " (base %s + extra %s)", FormatCurrency(p.Summary.BaseMonthlyPayment), FormatCurrency(p.Input.ExtraMonthlyPayment))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Total Interest:       %s\n", FormatCurrency(p.Summary.TotalInterest))
	fmt.Fprintf(buf, "Total Cost:           %s\n", FormatCurrency(p.Summary.TotalCost))
	fmt.Fprintf(buf, "Payoff:               %s", a.PayoffLabel)
	if p.Summary.PayoffDate != nil {
		fmt.Fprintf(buf, ", %s", p.Summary.PayoffDate.Format("January 2006"))
	}
	fmt.Fprintln(buf)
	if a.MonthsSaved > 0 {
		fmt.Fprintf(buf, "Extra Payment Saves:  %d months, %s interest\n", a.MonthsSaved, FormatCurrency(a.InterestSaved))
	}
	if p.IsPaidOff() {
		fmt.Fprintf(buf, "Net Worth at Payoff:  %s\n", FormatCurrency(a.NetWorthAtPayoff))
	}
	fmt.Fprintf(buf, "Net Worth at %-8s  %s\n", a.FinalLabel+":", FormatCurrency(a.FinalNetWorth))
	if a.PortfolioNegativeFrom != "" {
		fmt.Fprintf(buf, "WARNING: portfolio overdrawn from %s\n", a.PortfolioNegativeFrom)
	}
	fmt.Fprintln(buf)
}

func writeYearlyTable(buf *bytes.Buffer, p *domain.Projection) {
	fmt.Fprintln(buf, "YEARLY PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 113))
	fmt.Fprintf(buf, "%-10s %14s %14s %12s %16s %14s %14s %14s\n",
		"Period", "Balance", "Principal", "Int/Month", "Portfolio", "Home Value", "Equity", "Net Worth")
	fmt.Fprintln(buf, strings.Repeat("-", 113))
	for _, s := range p.Samples {
		fmt.Fprintf(buf, "%-10s %14s %14s %12s %16s %14s %14s %14s\n",
			s.Label,
			FormatCurrency(s.BalanceRemaining),
			FormatCurrency(s.PrincipalThisPeriod),
			FormatCurrency(s.InterestThisPeriod),
			FormatCurrency(s.PortfolioValue),
			FormatCurrency(s.HomeValue),
			FormatCurrency(s.HomeEquity),
			FormatCurrency(s.NetWorth),
		)
	}
	fmt.Fprintln(buf)
}
