package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "loan:\n" +
		"  principal: 300000\n" +
		"  annual_rate_percent: 6.5\n" +
		"  term_years: 30\n" +
		"  extra_monthly_payment: \"250\"\n" +
		"  start_date: \"2025-03-01\"\n" +
		"investment:\n" +
		"  initial_portfolio: 400000\n" +
		"  annual_market_return_percent: 7\n" +
		"home:\n" +
		"  initial_value: 375000\n" +
		"simulation:\n" +
		"  variant: stop-at-payoff\n" +
		"  horizon_years: 40\n" +
		"  timeframes:\n" +
		"    mortgage: 10\n" +
		"    net_worth: all\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "300000", config.Loan.Principal)
	assert.Equal(t, "6.5", config.Loan.AnnualRatePercent)
	assert.Equal(t, "250", config.Loan.ExtraMonthlyPayment)
	assert.Equal(t, "", config.Home.AnnualAppreciationPercent)
	require.NotNil(t, config.Simulation.HorizonYears)
	assert.Equal(t, 40, *config.Simulation.HorizonYears)

	in, err := parser.ParseRawInput(config.RawInput())
	require.NoError(t, err)
	assert.True(t, in.AnnualRatePercent.Equal(decimal.NewFromFloat(6.5)))
	assert.True(t, in.InitialHomeValue.Equal(decimal.NewFromInt(375000)))
	assert.True(t, in.AnnualHomeAppreciationPercent.IsZero())

	opts, err := parser.EngineOptions(config)
	require.NoError(t, err)
	assert.Equal(t, domain.VariantStopAtPayoff, opts.Variant)
	assert.Equal(t, 40, opts.HorizonYears)
	assert.True(t, opts.StopAtPayoff)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), opts.StartDate)

	tfs, err := parser.Timeframes(config)
	require.NoError(t, err)
	assert.Equal(t, 10, tfs[domain.SurfaceMortgage].Years())
	assert.True(t, tfs[domain.SurfacePortfolio].IsAll())
	assert.True(t, tfs[domain.SurfaceNetWorth].IsAll())
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, "loan: [principal\n"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeConfig(t, "loan:\n  principal: 0\n  annual_rate_percent: 5\n  term_years: 15\n"))

	assert.Nil(t, config)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestParseRawInput_Defaults(t *testing.T) {
	parser := NewInputParser()
	in, err := parser.ParseRawInput(domain.RawInput{
		Principal:           "200000",
		AnnualRatePercent:   "5",
		TermYears:           "15",
		ExtraMonthlyPayment: "  ",
	})
	require.NoError(t, err)

	assert.True(t, in.Principal.Equal(decimal.NewFromInt(200000)))
	assert.True(t, in.ExtraMonthlyPayment.IsZero())
	assert.True(t, in.InitialPortfolio.IsZero())
	assert.True(t, in.AnnualMarketReturnPercent.IsZero())
	assert.True(t, in.InitialHomeValue.Equal(in.Principal), "home value defaults to the principal")
	assert.True(t, in.AnnualHomeAppreciationPercent.IsZero())
}

func TestParseRawInput_FormattedNumbers(t *testing.T) {
	parser := NewInputParser()
	in, err := parser.ParseRawInput(domain.RawInput{
		Principal:         "$300,000",
		AnnualRatePercent: " 6.25 ",
		TermYears:         "30",
		InitialPortfolio:  "1,250,000.50",
	})
	require.NoError(t, err)
	assert.True(t, in.Principal.Equal(decimal.NewFromInt(300000)))
	assert.True(t, in.AnnualRatePercent.Equal(decimal.NewFromFloat(6.25)))
	assert.True(t, in.InitialPortfolio.Equal(decimal.RequireFromString("1250000.50")))
}

func TestParseRawInput_Invalid(t *testing.T) {
	valid := domain.RawInput{Principal: "200000", AnnualRatePercent: "5", TermYears: "15"}

	tests := []struct {
		name   string
		mutate func(*domain.RawInput)
		errMsg string
	}{
		{"missing principal", func(r *domain.RawInput) { r.Principal = "" }, "principal is required"},
		{"non-numeric principal", func(r *domain.RawInput) { r.Principal = "lots" }, "not a number"},
		{"zero principal", func(r *domain.RawInput) { r.Principal = "0" }, "principal must be positive"},
		{"missing rate", func(r *domain.RawInput) { r.AnnualRatePercent = "" }, "annual rate is required"},
		{"zero rate", func(r *domain.RawInput) { r.AnnualRatePercent = "0" }, "annual rate must be positive"},
		{"negative term", func(r *domain.RawInput) { r.TermYears = "-15" }, "term must be positive"},
		{"negative extra", func(r *domain.RawInput) { r.ExtraMonthlyPayment = "-10" }, "cannot be negative"},
		{"non-numeric optional", func(r *domain.RawInput) { r.AnnualMarketReturnPercent = "seven" }, "market return"},
		{"non-numeric home value", func(r *domain.RawInput) { r.InitialHomeValue = "n/a" }, "home value"},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)
			_, err := parser.ParseRawInput(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, calculation.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	parser := NewInputParser()
	yes, no := true, false
	horizon := 25

	t.Run("default is long horizon", func(t *testing.T) {
		opts, err := parser.EngineOptions(&domain.Configuration{})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultEngineOptions(), opts)
	})

	t.Run("overrides win over the preset", func(t *testing.T) {
		opts, err := parser.EngineOptions(&domain.Configuration{Simulation: domain.SimulationSettings{
			HorizonYears:           &horizon,
			StopAtPayoff:           &yes,
			ApplyDownPaymentOffset: &no,
		}})
		require.NoError(t, err)
		assert.Equal(t, domain.VariantLongHorizon, opts.Variant)
		assert.Equal(t, 25, opts.HorizonYears)
		assert.True(t, opts.StopAtPayoff)
		assert.False(t, opts.ApplyDownPaymentOffset)
	})

	t.Run("unknown variant", func(t *testing.T) {
		_, err := parser.EngineOptions(&domain.Configuration{Simulation: domain.SimulationSettings{Variant: "eternal"}})
		assert.Error(t, err)
	})

	t.Run("bad horizon", func(t *testing.T) {
		zero := 0
		_, err := parser.EngineOptions(&domain.Configuration{Simulation: domain.SimulationSettings{HorizonYears: &zero}})
		assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	})

	t.Run("bad start date", func(t *testing.T) {
		_, err := parser.EngineOptions(&domain.Configuration{Loan: domain.LoanDetails{StartDate: "03/01/2025"}})
		assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	})
}

func TestTimeframes_Invalid(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.Timeframes(&domain.Configuration{Simulation: domain.SimulationSettings{
		Timeframes: map[string]string{"taxes": "10"},
	}})
	assert.Error(t, err)

	_, err = parser.Timeframes(&domain.Configuration{Simulation: domain.SimulationSettings{
		Timeframes: map[string]string{"portfolio": "ten"},
	}})
	assert.Error(t, err)
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	require.NoError(t, parser.ValidateConfiguration(config))

	// The example survives a YAML round trip through the loader.
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	loaded, err := parser.LoadFromFile(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, config.Loan, loaded.Loan)
	assert.Equal(t, config.Simulation.Timeframes, loaded.Simulation.Timeframes)
}
