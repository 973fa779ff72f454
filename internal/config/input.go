package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DateLayout is the accepted format for loan.start_date.
const DateLayout = "2006-01-02"

// InputParser handles parsing of input configuration files and raw form values
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if _, err := ip.ParseRawInput(config.RawInput()); err != nil {
		return err
	}
	if _, err := ip.EngineOptions(config); err != nil {
		return fmt.Errorf("simulation settings: %w", err)
	}
	if _, err := ip.Timeframes(config); err != nil {
		return fmt.Errorf("simulation settings: %w", err)
	}
	return nil
}

// ParseRawInput converts form-style values into a SimulationInput. Empty optional values
// take their defaults: zero, or the principal for the home value. Required values that
// are missing or out of range, and any value that is not a number, wrap
// calculation.ErrInvalidInput.
func (ip *InputParser) ParseRawInput(raw domain.RawInput) (domain.SimulationInput, error) {
	var in domain.SimulationInput
	var err error

	if in.Principal, err = parseRequired("principal", raw.Principal); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.AnnualRatePercent, err = parseRequired("annual rate", raw.AnnualRatePercent); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.TermYears, err = parseRequired("term", raw.TermYears); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.ExtraMonthlyPayment, err = parseOptional("extra monthly payment", raw.ExtraMonthlyPayment, decimal.Zero); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.InitialPortfolio, err = parseOptional("initial portfolio", raw.InitialPortfolio, decimal.Zero); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.AnnualMarketReturnPercent, err = parseOptional("market return", raw.AnnualMarketReturnPercent, decimal.Zero); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.InitialHomeValue, err = parseOptional("home value", raw.InitialHomeValue, in.Principal); err != nil {
		return domain.SimulationInput{}, err
	}
	if in.AnnualHomeAppreciationPercent, err = parseOptional("home appreciation", raw.AnnualHomeAppreciationPercent, decimal.Zero); err != nil {
		return domain.SimulationInput{}, err
	}

	if err := calculation.ValidateInput(in); err != nil {
		return domain.SimulationInput{}, err
	}
	return in, nil
}

// EngineOptions resolves the variant preset and applies explicit overrides.
func (ip *InputParser) EngineOptions(config *domain.Configuration) (domain.EngineOptions, error) {
	s := config.Simulation
	variant, err := domain.ParseVariant(s.Variant)
	if err != nil {
		return domain.EngineOptions{}, err
	}
	opts, err := domain.OptionsForVariant(variant)
	if err != nil {
		return domain.EngineOptions{}, err
	}

	if s.HorizonYears != nil {
		if *s.HorizonYears <= 0 {
			return domain.EngineOptions{}, fmt.Errorf("%w: horizon_years must be positive, got %d", calculation.ErrInvalidInput, *s.HorizonYears)
		}
		opts.HorizonYears = *s.HorizonYears
	}
	if s.StopAtPayoff != nil {
		opts.StopAtPayoff = *s.StopAtPayoff
	}
	if s.ApplyDownPaymentOffset != nil {
		opts.ApplyDownPaymentOffset = *s.ApplyDownPaymentOffset
	}

	if start := strings.TrimSpace(config.Loan.StartDate); start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return domain.EngineOptions{}, fmt.Errorf("%w: start_date %q is not a %s date", calculation.ErrInvalidInput, start, DateLayout)
		}
		opts.StartDate = t
	}
	return opts, nil
}

// Timeframes returns the per-surface timeframes. Surfaces not named in the file show everything.
func (ip *InputParser) Timeframes(config *domain.Configuration) (map[domain.Surface]calculation.Timeframe, error) {
	out := make(map[domain.Surface]calculation.Timeframe, len(domain.AllSurfaces))
	for _, s := range domain.AllSurfaces {
		out[s] = calculation.AllTime
	}
	for name, value := range config.Simulation.Timeframes {
		surface, err := domain.ParseSurface(name)
		if err != nil {
			return nil, err
		}
		tf, err := calculation.ParseTimeframe(value)
		if err != nil {
			return nil, fmt.Errorf("timeframe for %s: %w", surface, err)
		}
		out[surface] = tf
	}
	return out, nil
}

func parseRequired(field, value string) (decimal.Decimal, error) {
	v := normalizeNumber(value)
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", calculation.ErrInvalidInput, field)
	}
	return parseNumber(field, v)
}

func parseOptional(field, value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := normalizeNumber(value)
	if v == "" {
		return fallback, nil
	}
	return parseNumber(field, v)
}

func parseNumber(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", calculation.ErrInvalidInput, field, v)
	}
	return d, nil
}

// normalizeNumber trims whitespace and drops thousands separators and a leading dollar sign.
func normalizeNumber(s string) string {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "$")
	return strings.ReplaceAll(v, ",", "")
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	horizon := 60
	return &domain.Configuration{
		Loan: domain.LoanDetails{
			Principal:           "300000",
			AnnualRatePercent:   "6",
			TermYears:           "30",
			ExtraMonthlyPayment: "200",
			StartDate:           "2025-01-01",
		},
		Investment: domain.InvestmentDetails{
			InitialPortfolio:          "400000",
			AnnualMarketReturnPercent: "7",
		},
		Home: domain.HomeDetails{
			InitialValue:              "375000",
			AnnualAppreciationPercent: "3",
		},
		Simulation: domain.SimulationSettings{
			Variant:      string(domain.VariantLongHorizon),
			HorizonYears: &horizon,
			Timeframes: map[string]string{
				string(domain.SurfaceMortgage):  "30",
				string(domain.SurfacePortfolio): "all",
				string(domain.SurfaceNetWorth):  "all",
			},
		},
	}
}
