package calculation

import (
	"fmt"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// SolveExtraPayment finds the smallest extra monthly payment, to the cent, that retires
// the loan within targetYears. Any extra payment already present on in is ignored.
// The returned projection is run with the solved extra payment and the caller's options.
func (e *Engine) SolveExtraPayment(in domain.SimulationInput, opts domain.EngineOptions, targetYears decimal.Decimal) (decimal.Decimal, *domain.Projection, error) {
	if !targetYears.IsPositive() {
		return decimal.Zero, nil, fmt.Errorf("%w: target years must be positive, got %s", ErrInvalidInput, targetYears)
	}
	if targetYears.GreaterThan(decimal.NewFromInt(int64(opts.HorizonYears))) {
		return decimal.Zero, nil, fmt.Errorf("%w: target of %s years is beyond the %d-year horizon", ErrInvalidInput, targetYears, opts.HorizonYears)
	}
	targetMonths := targetYears.Mul(twelve)
	if targetMonths.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, nil, fmt.Errorf("%w: target of %s years is shorter than one payment", ErrInvalidInput, targetYears)
	}

	probe := opts
	probe.StopAtPayoff = true
	quiet := &Engine{Logger: NopLogger{}}

	paysOffInTime := func(extra decimal.Decimal) (bool, error) {
		trial := in
		trial.ExtraMonthlyPayment = extra
		p, err := quiet.Simulate(trial, probe)
		if err != nil {
			return false, err
		}
		return p.IsPaidOff() && decimal.NewFromInt(int64(p.Summary.PayoffMonth)).LessThanOrEqual(targetMonths), nil
	}

	ok, err := paysOffInTime(decimal.Zero)
	if err != nil {
		return decimal.Zero, nil, err
	}

	extra := decimal.Zero
	if !ok {
		// Paying the whole principal on top of the first instalment always clears the loan in month one.
		lo, hi := decimal.Zero, in.Principal
		cent := decimal.NewFromFloat(0.01)
		maxIterations := 64
		for i := 0; i < maxIterations && hi.Sub(lo).GreaterThan(cent); i++ {
			mid := lo.Add(hi).Div(decimal.NewFromInt(2)).Round(2)
			ok, err := paysOffInTime(mid)
			if err != nil {
				return decimal.Zero, nil, err
			}
			if ok {
				hi = mid
			} else {
				lo = mid
			}
		}
		extra = hi
		e.Logger.Debugf("solved extra payment %s for %s-year payoff", extra.StringFixed(2), targetYears)
	}

	final := in
	final.ExtraMonthlyPayment = extra
	p, err := e.Simulate(final, opts)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return extra, p, nil
}
