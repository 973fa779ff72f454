package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(p *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer
	a := AnalyzeProjection(p)
	fmt.Fprintln(&buf, "MORTGAGE SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Monthly Payment: %s\n", FormatCurrency(p.Summary.MonthlyPayment))
	fmt.Fprintf(&buf, "Total Interest: %s\n", FormatCurrency(p.Summary.TotalInterest))
	fmt.Fprintf(&buf, "Total Cost: %s\n", FormatCurrency(p.Summary.TotalCost))
	fmt.Fprintf(&buf, "Payoff: %s\n", a.PayoffLabel)
	if a.FinalLabel != "" {
		fmt.Fprintf(&buf, "Net Worth (%s): %s\n", a.FinalLabel, FormatCurrency(a.FinalNetWorth))
	}
	return buf.Bytes(), nil
}
