package output

import (
	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Analysis collects the headline facts of a projection for the report formatters.
type Analysis struct {
	PayoffLabel      string
	NetWorthAtPayoff decimal.Decimal

	// Savings against the same loan without the extra payment; zero when there is none.
	MonthsSaved   int
	InterestSaved decimal.Decimal

	FinalLabel    string
	FinalNetWorth decimal.Decimal

	PeakPortfolio      decimal.Decimal
	PeakPortfolioLabel string
	// First sample at which the portfolio is below zero; empty when it never is.
	PortfolioNegativeFrom string
}

// AnalyzeProjection derives the headline facts. The no-extra baseline is re-simulated
// with the projection's own options.
func AnalyzeProjection(p *domain.Projection) Analysis {
	a := Analysis{PayoffLabel: FormatPayoff(p.Summary.PayoffMonth)}

	for i, s := range p.Samples {
		if s.Month == p.Summary.PayoffMonth {
			a.NetWorthAtPayoff = s.NetWorth
		}
		if i == 0 || s.PortfolioValue.GreaterThan(a.PeakPortfolio) {
			a.PeakPortfolio = s.PortfolioValue
			a.PeakPortfolioLabel = s.Label
		}
		if a.PortfolioNegativeFrom == "" && s.PortfolioValue.IsNegative() {
			a.PortfolioNegativeFrom = s.Label
		}
	}
	if last, ok := p.LastSample(); ok {
		a.FinalLabel = last.Label
		a.FinalNetWorth = last.NetWorth
	}

	if p.Input.ExtraMonthlyPayment.IsPositive() {
		base := p.Input
		base.ExtraMonthlyPayment = decimal.Zero
		opts := p.Options
		opts.StopAtPayoff = true
		if baseline, err := calculation.NewEngine().Simulate(base, opts); err == nil {
			a.InterestSaved = baseline.Summary.TotalInterest.Sub(p.Summary.TotalInterest)
			if baseline.IsPaidOff() && p.IsPaidOff() {
				a.MonthsSaved = baseline.Summary.PayoffMonth - p.Summary.PayoffMonth
			}
		}
	}
	return a
}
