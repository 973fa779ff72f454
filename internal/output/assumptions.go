package output

import (
	"fmt"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// DefaultAssumptions lists the modelling assumptions common to every projection.
var DefaultAssumptions = []string{
	"Loan interest accrues monthly at the nominal annual rate / 12",
	"Portfolio returns compound monthly; the mortgage payment is withdrawn after growth",
	"Home value compounds monthly and keeps appreciating after payoff",
	"No taxes, fees, insurance or inflation adjustments",
}

// GenerateAssumptions creates the assumptions list from the projection's actual inputs.
func GenerateAssumptions(p *domain.Projection) []string {
	in := p.Input
	lines := []string{
		fmt.Sprintf("Loan: %s at %s over %s years", FormatCurrency(in.Principal), FormatPercentage(in.AnnualRatePercent), in.TermYears.String()),
	}
	if in.ExtraMonthlyPayment.IsPositive() {
		lines = append(lines, fmt.Sprintf("Extra monthly payment: %s", FormatCurrency(in.ExtraMonthlyPayment)))
	}
	lines = append(lines,
		fmt.Sprintf("Market return: %s annually", FormatPercentage(in.AnnualMarketReturnPercent)),
		fmt.Sprintf("Home appreciation: %s annually", FormatPercentage(in.AnnualHomeAppreciationPercent)),
		describeVariant(p.Options),
	)
	if p.Options.ApplyDownPaymentOffset && p.Summary.DownPayment.IsPositive() {
		lines = append(lines, fmt.Sprintf("Down payment of %s drawn from the starting portfolio", FormatCurrency(p.Summary.DownPayment)))
	}
	return append(lines, DefaultAssumptions...)
}

func describeVariant(o domain.EngineOptions) string {
	if o.StopAtPayoff {
		return fmt.Sprintf("Simulation stops at payoff (cap %d years)", o.HorizonYears)
	}
	return fmt.Sprintf("Simulation runs %d years regardless of payoff", o.HorizonYears)
}
