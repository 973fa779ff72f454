package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/config"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleProjection(t *testing.T) *domain.Projection {
	t.Helper()
	parser := config.NewInputParser()
	cfg := parser.CreateExampleConfiguration()
	in, err := parser.ParseRawInput(cfg.RawInput())
	require.NoError(t, err)
	opts, err := parser.EngineOptions(cfg)
	require.NoError(t, err)
	p, err := calculation.NewEngine().Simulate(in, opts)
	require.NoError(t, err)
	return p
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$1,799", output.FormatCurrency(mustDecimal("1798.65")))
	assert.Equal(t, "12.34%", output.FormatPercentage(mustDecimal("12.34")))
}

func TestSaveConfiguration(t *testing.T) {
	cfg := config.NewInputParser().CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	loaded, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Loan, loaded.Loan)
	assert.Equal(t, cfg.Home, loaded.Home)
}

func TestGenerateReport_WritesTimestampedFiles(t *testing.T) {
	output.SetNowFunc(func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) })
	defer output.SetNowFunc(nil)

	dir := t.TempDir()
	p := exampleProjection(t)

	files, err := output.GenerateReport(p, "json", dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "mortgage_report_20250601_093000.json")}, files)

	files, err = output.GenerateReport(p, "csv-summary", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ".csv"))

	files, err = output.GenerateReport(p, "all", dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.True(t, strings.HasSuffix(files[0], ".txt"))
	assert.True(t, strings.HasSuffix(files[1], ".csv"))

	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
