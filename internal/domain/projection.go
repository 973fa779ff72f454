package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sample is one recorded snapshot of the simulation, taken at a year boundary,
// the payoff month or the scheduled end of the term.
type Sample struct {
	Month int             `json:"month"`
	Year  decimal.Decimal `json:"year"`
	Label string          `json:"label"`

	// Mortgage
	BalanceRemaining    decimal.Decimal `json:"balance_remaining"`
	InterestThisPeriod  decimal.Decimal `json:"interest_this_period"`  // interest charged in the sampled month
	PrincipalThisPeriod decimal.Decimal `json:"principal_this_period"` // principal repaid since the previous sample

	// Portfolio
	PortfolioValue   decimal.Decimal `json:"portfolio_value"`
	PortfolioPayment decimal.Decimal `json:"portfolio_payment"` // debt service drawn in the sampled month

	// Home and totals
	HomeValue  decimal.Decimal `json:"home_value"`
	HomeEquity decimal.Decimal `json:"home_equity"`
	NetWorth   decimal.Decimal `json:"net_worth"`
}

// Summary holds the scalar results of a run.
type Summary struct {
	MonthlyPayment     decimal.Decimal `json:"monthly_payment"`
	BaseMonthlyPayment decimal.Decimal `json:"base_monthly_payment"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	DownPayment        decimal.Decimal `json:"down_payment"`
	PayoffMonth        int             `json:"payoff_month"` // 0 when the loan outlives the horizon
	PayoffDate         *time.Time      `json:"payoff_date,omitempty"`
}

// Projection is the full output of one simulation run.
type Projection struct {
	Input   SimulationInput `json:"input"`
	Options EngineOptions   `json:"options"`
	Summary Summary         `json:"summary"`
	Samples []Sample        `json:"samples"`
}

// SeriesKey identifies one numeric series of a projection.
type SeriesKey string

const (
	SeriesBalance          SeriesKey = "balance"
	SeriesInterest         SeriesKey = "interest"
	SeriesPrincipal        SeriesKey = "principal"
	SeriesPortfolio        SeriesKey = "portfolio"
	SeriesPortfolioPayment SeriesKey = "portfolio_payment"
	SeriesHomeEquity       SeriesKey = "home_equity"
	SeriesNetWorth         SeriesKey = "net_worth"
)

// AllSeries lists every series key in display order.
var AllSeries = []SeriesKey{
	SeriesBalance, SeriesInterest, SeriesPrincipal,
	SeriesPortfolio, SeriesPortfolioPayment,
	SeriesHomeEquity, SeriesNetWorth,
}

// Value returns the sample's value for a series key.
func (s Sample) Value(key SeriesKey) decimal.Decimal {
	switch key {
	case SeriesBalance:
		return s.BalanceRemaining
	case SeriesInterest:
		return s.InterestThisPeriod
	case SeriesPrincipal:
		return s.PrincipalThisPeriod
	case SeriesPortfolio:
		return s.PortfolioValue
	case SeriesPortfolioPayment:
		return s.PortfolioPayment
	case SeriesHomeEquity:
		return s.HomeEquity
	case SeriesNetWorth:
		return s.NetWorth
	}
	return decimal.Zero
}

// Labels returns the shared year-label axis.
func (p *Projection) Labels() []string {
	labels := make([]string, len(p.Samples))
	for i, s := range p.Samples {
		labels[i] = s.Label
	}
	return labels
}

// Series returns one series aligned with Labels.
func (p *Projection) Series(key SeriesKey) []decimal.Decimal {
	values := make([]decimal.Decimal, len(p.Samples))
	for i, s := range p.Samples {
		values[i] = s.Value(key)
	}
	return values
}

// LastSample returns the final sample, if any.
func (p *Projection) LastSample() (Sample, bool) {
	if len(p.Samples) == 0 {
		return Sample{}, false
	}
	return p.Samples[len(p.Samples)-1], true
}

// IsPaidOff reports whether the loan reached a zero balance within the horizon.
func (p *Projection) IsPaidOff() bool {
	return p.Summary.PayoffMonth > 0
}
