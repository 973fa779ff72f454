package calculation

import (
	"errors"
	"fmt"
	"math"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned when a required input is missing, non-numeric or out of range.
var ErrInvalidInput = errors.New("invalid input")

// statePrecision is the number of fractional digits kept on running balances between months.
const statePrecision = 10

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	// payoffTolerance absorbs rounding residue left on the balance in the final month.
	payoffTolerance = decimal.New(1, -6)
)

// Engine runs amortization and net-worth simulations.
type Engine struct {
	Debug  bool // Log every emitted sample
	Logger Logger
}

// NewEngine creates an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ValidateInput checks the domain constraints on the required inputs.
func ValidateInput(in domain.SimulationInput) error {
	if !in.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidInput, in.Principal)
	}
	if !in.AnnualRatePercent.IsPositive() {
		return fmt.Errorf("%w: annual rate must be positive, got %s", ErrInvalidInput, in.AnnualRatePercent)
	}
	if !in.TermYears.IsPositive() {
		return fmt.Errorf("%w: term must be positive, got %s", ErrInvalidInput, in.TermYears)
	}
	if in.ExtraMonthlyPayment.IsNegative() {
		return fmt.Errorf("%w: extra monthly payment cannot be negative, got %s", ErrInvalidInput, in.ExtraMonthlyPayment)
	}
	return nil
}

// MonthlyPayment returns the level annuity payment M = P·r(1+r)^n / ((1+r)^n − 1)
// for a nominal annual rate in percent. The term may be a fractional number of years,
// so the growth factor is evaluated in floating point.
func MonthlyPayment(principal, annualRatePercent, termYears decimal.Decimal) (decimal.Decimal, error) {
	r := monthlyRate(annualRatePercent).InexactFloat64()
	n := dateutil.MonthsInYears(termYears).InexactFloat64()
	growth := math.Pow(1+r, n)
	m := principal.InexactFloat64() * r * growth / (growth - 1)
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return decimal.Zero, fmt.Errorf("%w: monthly payment is not computable for principal %s, rate %s%%, term %s years",
			ErrInvalidInput, principal, annualRatePercent, termYears)
	}
	return decimal.NewFromFloat(m).Round(statePrecision), nil
}

func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}

// monthlyTerms are the constants of a run.
type monthlyTerms struct {
	payment    decimal.Decimal
	loanRate   decimal.Decimal
	marketRate decimal.Decimal
	homeRate   decimal.Decimal
	floorZero  bool
}

// monthResult is what happened to the loan in one month.
type monthResult struct {
	interest  decimal.Decimal
	principal decimal.Decimal
	payment   decimal.Decimal
}

// simulationState is local to one run.
type simulationState struct {
	balance         decimal.Decimal
	portfolio       decimal.Decimal
	homeValue       decimal.Decimal
	totalInterest   decimal.Decimal
	annualPrincipal decimal.Decimal
}

// advance applies one month: debt service, then portfolio accrual and withdrawal,
// then home appreciation.
func (s *simulationState) advance(t monthlyTerms) monthResult {
	var m monthResult
	if s.balance.IsPositive() {
		m.interest = s.balance.Mul(t.loanRate).Round(statePrecision)
		m.principal = t.payment.Sub(m.interest)
		if m.principal.GreaterThan(s.balance) {
			m.principal = s.balance // final payoff
		}
		remaining := s.balance.Sub(m.principal)
		if remaining.LessThan(payoffTolerance) {
			m.principal = s.balance
			remaining = decimal.Zero
		}
		m.payment = m.interest.Add(m.principal)
		s.balance = remaining
	}

	s.portfolio = s.portfolio.Add(s.portfolio.Mul(t.marketRate)).Round(statePrecision).Sub(m.payment)
	if t.floorZero && s.portfolio.IsNegative() {
		s.portfolio = decimal.Zero
	}
	s.homeValue = s.homeValue.Add(s.homeValue.Mul(t.homeRate)).Round(statePrecision)

	s.totalInterest = s.totalInterest.Add(m.interest)
	s.annualPrincipal = s.annualPrincipal.Add(m.principal)
	return m
}

func (s *simulationState) sample(month int, year decimal.Decimal, label string, m monthResult) domain.Sample {
	equity := s.homeValue.Sub(s.balance)
	return domain.Sample{
		Month:               month,
		Year:                year,
		Label:               label,
		BalanceRemaining:    s.balance,
		InterestThisPeriod:  m.interest,
		PrincipalThisPeriod: s.annualPrincipal,
		PortfolioValue:      s.portfolio,
		PortfolioPayment:    m.payment,
		HomeValue:           s.homeValue,
		HomeEquity:          equity,
		NetWorth:            equity.Add(s.portfolio),
	}
}

// Simulate runs the month-by-month simulation and returns the sampled projection.
// Errors wrap ErrInvalidInput; the engine has no other failure modes.
func (e *Engine) Simulate(in domain.SimulationInput, opts domain.EngineOptions) (*domain.Projection, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	if opts.HorizonYears <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive, got %d years", ErrInvalidInput, opts.HorizonYears)
	}

	base, err := MonthlyPayment(in.Principal, in.AnnualRatePercent, in.TermYears)
	if err != nil {
		return nil, err
	}
	terms := monthlyTerms{
		payment:    base.Add(in.ExtraMonthlyPayment),
		loanRate:   monthlyRate(in.AnnualRatePercent),
		marketRate: monthlyRate(in.AnnualMarketReturnPercent),
		homeRate:   monthlyRate(in.AnnualHomeAppreciationPercent),
		floorZero:  opts.FloorPortfolioAtZero,
	}

	downPayment := decimal.Zero
	if opts.ApplyDownPaymentOffset {
		downPayment = in.DownPayment()
	}
	st := &simulationState{
		balance:   in.Principal,
		portfolio: in.InitialPortfolio.Sub(downPayment),
		homeValue: in.InitialHomeValue,
	}

	termMonths := in.TermMonths()
	samples := make([]domain.Sample, 0, opts.HorizonYears+2)
	payoffMonth := 0

	for month := 1; month <= opts.MaxMonths(); month++ {
		hadBalance := st.balance.IsPositive()
		m := st.advance(terms)

		paidOff := hadBalance && st.balance.IsZero()
		if paidOff {
			payoffMonth = month
		}
		atTermEnd := opts.SampleAtTermEnd && st.balance.IsPositive() && termMonths.Equal(decimal.NewFromInt(int64(month)))

		if dateutil.IsYearBoundary(month) || paidOff || atTermEnd {
			year := dateutil.YearOfMonth(month)
			label := dateutil.FormatYearLabel(year)
			if len(samples) == 0 || samples[len(samples)-1].Label != label {
				s := st.sample(month, year, label, m)
				samples = append(samples, s)
				st.annualPrincipal = decimal.Zero
				if e.Debug {
					e.Logger.Debugf("%s: balance=%s principal=%s interest=%s portfolio=%s equity=%s net=%s",
						label, s.BalanceRemaining.StringFixed(2), s.PrincipalThisPeriod.StringFixed(2),
						s.InterestThisPeriod.StringFixed(2), s.PortfolioValue.StringFixed(2),
						s.HomeEquity.StringFixed(2), s.NetWorth.StringFixed(2))
				}
			}
		}

		if paidOff && opts.StopAtPayoff {
			break
		}
	}

	summary := domain.Summary{
		MonthlyPayment:     terms.payment,
		BaseMonthlyPayment: base,
		TotalInterest:      st.totalInterest,
		TotalCost:          in.Principal.Add(st.totalInterest),
		DownPayment:        downPayment,
		PayoffMonth:        payoffMonth,
	}
	if payoffMonth > 0 && !opts.StartDate.IsZero() {
		d := dateutil.PaymentDate(opts.StartDate, payoffMonth)
		summary.PayoffDate = &d
	}
	if payoffMonth == 0 {
		e.Logger.Warnf("loan not paid off within the %d-year horizon; remaining balance %s",
			opts.HorizonYears, st.balance.StringFixed(2))
	}
	e.Logger.Debugf("simulation complete: payment=%s total_interest=%s payoff_month=%d samples=%d",
		summary.MonthlyPayment.StringFixed(2), summary.TotalInterest.StringFixed(2), payoffMonth, len(samples))

	return &domain.Projection{
		Input:   in,
		Options: opts,
		Summary: summary,
		Samples: samples,
	}, nil
}
