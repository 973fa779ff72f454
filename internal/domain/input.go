package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationInput holds the validated numeric inputs for one amortization run.
// Optional fields are already defaulted: zero for the extra payment, portfolio and rates,
// and Principal for InitialHomeValue.
type SimulationInput struct {
	Principal                     decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent             decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears                     decimal.Decimal `yaml:"term_years" json:"term_years"`
	ExtraMonthlyPayment           decimal.Decimal `yaml:"extra_monthly_payment" json:"extra_monthly_payment"`
	InitialPortfolio              decimal.Decimal `yaml:"initial_portfolio" json:"initial_portfolio"`
	AnnualMarketReturnPercent     decimal.Decimal `yaml:"annual_market_return_percent" json:"annual_market_return_percent"`
	InitialHomeValue              decimal.Decimal `yaml:"initial_home_value" json:"initial_home_value"`
	AnnualHomeAppreciationPercent decimal.Decimal `yaml:"annual_home_appreciation_percent" json:"annual_home_appreciation_percent"`
}

// RawInput carries the eight inputs exactly as a form or config file supplies them.
// Empty strings mean "not provided".
type RawInput struct {
	Principal                     string
	AnnualRatePercent             string
	TermYears                     string
	ExtraMonthlyPayment           string
	InitialPortfolio              string
	AnnualMarketReturnPercent     string
	InitialHomeValue              string
	AnnualHomeAppreciationPercent string
}

// Configuration is the on-disk scenario file.
type Configuration struct {
	Loan       LoanDetails        `yaml:"loan" json:"loan"`
	Investment InvestmentDetails  `yaml:"investment,omitempty" json:"investment,omitempty"`
	Home       HomeDetails        `yaml:"home,omitempty" json:"home,omitempty"`
	Simulation SimulationSettings `yaml:"simulation,omitempty" json:"simulation,omitempty"`
}

// LoanDetails describes the mortgage. Values are kept as text so that empty optional
// fields fall back to their defaults the same way form fields do.
type LoanDetails struct {
	Principal           string `yaml:"principal" json:"principal"`
	AnnualRatePercent   string `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears           string `yaml:"term_years" json:"term_years"`
	ExtraMonthlyPayment string `yaml:"extra_monthly_payment,omitempty" json:"extra_monthly_payment,omitempty"`
	StartDate           string `yaml:"start_date,omitempty" json:"start_date,omitempty"` // YYYY-MM-DD, first payment month
}

// InvestmentDetails describes the investment portfolio that services the loan.
type InvestmentDetails struct {
	InitialPortfolio          string `yaml:"initial_portfolio,omitempty" json:"initial_portfolio,omitempty"`
	AnnualMarketReturnPercent string `yaml:"annual_market_return_percent,omitempty" json:"annual_market_return_percent,omitempty"`
}

// HomeDetails describes the property.
type HomeDetails struct {
	InitialValue              string `yaml:"initial_value,omitempty" json:"initial_value,omitempty"`
	AnnualAppreciationPercent string `yaml:"annual_appreciation_percent,omitempty" json:"annual_appreciation_percent,omitempty"`
}

// SimulationSettings selects the engine variant and per-surface timeframes.
// Explicit flags override the variant preset.
type SimulationSettings struct {
	Variant                string            `yaml:"variant,omitempty" json:"variant,omitempty"`
	HorizonYears           *int              `yaml:"horizon_years,omitempty" json:"horizon_years,omitempty"`
	StopAtPayoff           *bool             `yaml:"stop_at_payoff,omitempty" json:"stop_at_payoff,omitempty"`
	ApplyDownPaymentOffset *bool             `yaml:"apply_down_payment_offset,omitempty" json:"apply_down_payment_offset,omitempty"`
	Timeframes             map[string]string `yaml:"timeframes,omitempty" json:"timeframes,omitempty"` // surface -> "all" | years
}

// RawInput flattens the configuration into form-style raw values.
func (c *Configuration) RawInput() RawInput {
	return RawInput{
		Principal:                     c.Loan.Principal,
		AnnualRatePercent:             c.Loan.AnnualRatePercent,
		TermYears:                     c.Loan.TermYears,
		ExtraMonthlyPayment:           c.Loan.ExtraMonthlyPayment,
		InitialPortfolio:              c.Investment.InitialPortfolio,
		AnnualMarketReturnPercent:     c.Investment.AnnualMarketReturnPercent,
		InitialHomeValue:              c.Home.InitialValue,
		AnnualHomeAppreciationPercent: c.Home.AnnualAppreciationPercent,
	}
}

// DownPayment is the part of the home value not financed by the loan (never negative).
func (in SimulationInput) DownPayment() decimal.Decimal {
	return decimal.Max(decimal.Zero, in.InitialHomeValue.Sub(in.Principal))
}

// TermMonths returns the scheduled number of payments. It may be fractional.
func (in SimulationInput) TermMonths() decimal.Decimal {
	return in.TermYears.Mul(decimal.NewFromInt(12))
}
