package domain

import (
	"fmt"
	"strings"
	"time"
)

// Variant names one of the two engine behaviours.
type Variant string

const (
	// VariantLongHorizon keeps simulating for 60 years after payoff and funds the down
	// payment out of the starting portfolio.
	VariantLongHorizon Variant = "long_horizon"
	// VariantStopAtPayoff ends the run in the payoff month, caps at 100 years and leaves
	// the starting portfolio untouched.
	VariantStopAtPayoff Variant = "stop_at_payoff"
)

// EngineOptions controls horizon and variant-specific behaviour of a simulation run.
type EngineOptions struct {
	Variant                Variant   `json:"variant"`
	HorizonYears           int       `json:"horizon_years"`
	StopAtPayoff           bool      `json:"stop_at_payoff"`
	ApplyDownPaymentOffset bool      `json:"apply_down_payment_offset"`
	SampleAtTermEnd        bool      `json:"sample_at_term_end"`
	FloorPortfolioAtZero   bool      `json:"floor_portfolio_at_zero"`
	StartDate              time.Time `json:"start_date,omitempty"`
}

// DefaultEngineOptions returns the long-horizon preset.
func DefaultEngineOptions() EngineOptions {
	opts, _ := OptionsForVariant(VariantLongHorizon)
	return opts
}

// OptionsForVariant returns the preset for a variant.
func OptionsForVariant(v Variant) (EngineOptions, error) {
	switch v {
	case VariantLongHorizon, "":
		return EngineOptions{
			Variant:                VariantLongHorizon,
			HorizonYears:           60,
			ApplyDownPaymentOffset: true,
			SampleAtTermEnd:        true,
		}, nil
	case VariantStopAtPayoff:
		return EngineOptions{
			Variant:              VariantStopAtPayoff,
			HorizonYears:         100,
			StopAtPayoff:         true,
			FloorPortfolioAtZero: true,
		}, nil
	default:
		return EngineOptions{}, fmt.Errorf("unknown variant %q (want %q or %q)", v, VariantLongHorizon, VariantStopAtPayoff)
	}
}

// ParseVariant accepts the canonical names plus dashed spellings.
func ParseVariant(s string) (Variant, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch Variant(n) {
	case "":
		return VariantLongHorizon, nil
	case VariantLongHorizon, VariantStopAtPayoff:
		return Variant(n), nil
	}
	return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantLongHorizon, VariantStopAtPayoff)
}

// MaxMonths is the hard iteration bound for a run.
func (o EngineOptions) MaxMonths() int {
	return o.HorizonYears * 12
}
