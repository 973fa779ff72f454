package calculation

import (
	"testing"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveExtraPayment(t *testing.T) {
	in := loanInput(200000, 5, 15)
	opts := domain.DefaultEngineOptions()

	extra, p, err := NewEngine().SolveExtraPayment(in, opts, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, extra.IsPositive())
	assert.True(t, extra.Equal(extra.Round(2)), "solved to the cent: %s", extra)
	assert.LessOrEqual(t, p.Summary.PayoffMonth, 120)
	assert.True(t, p.Input.ExtraMonthlyPayment.Equal(extra))
	assert.Equal(t, opts, p.Options, "final run uses the caller's options")

	// One cent less must miss the target.
	short := in
	short.ExtraMonthlyPayment = extra.Sub(decimal.NewFromFloat(0.01))
	missed, err := NewEngine().Simulate(short, opts)
	require.NoError(t, err)
	assert.Greater(t, missed.Summary.PayoffMonth, 120)
}

func TestSolveExtraPaymentTargetAlreadyMet(t *testing.T) {
	in := loanInput(200000, 5, 15)
	in.ExtraMonthlyPayment = d(900)

	extra, p, err := NewEngine().SolveExtraPayment(in, domain.DefaultEngineOptions(), decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, extra.IsZero(), "the scheduled term already beats the target")
	assert.Equal(t, 180, p.Summary.PayoffMonth)
}

func TestSolveExtraPaymentRejectsBadTargets(t *testing.T) {
	tests := []struct {
		name   string
		target decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-5)},
		{"shorter than a month", decimal.NewFromFloat(0.05)},
		{"beyond horizon", decimal.NewFromInt(61)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p, err := NewEngine().SolveExtraPayment(loanInput(200000, 5, 15), domain.DefaultEngineOptions(), tt.target)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, p)
		})
	}
}
