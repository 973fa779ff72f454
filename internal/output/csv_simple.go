package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// CSVSummarizer implements the simple CSV output (one row per sample, chart series only).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(p *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Period", "Balance", "PrincipalPaid", "InterestPerMonth", "Portfolio", "HomeEquity", "NetWorth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range p.Samples {
		row := []string{
			s.Label,
			s.BalanceRemaining.StringFixed(2),
			s.PrincipalThisPeriod.StringFixed(2),
			s.InterestThisPeriod.StringFixed(2),
			s.PortfolioValue.StringFixed(2),
			s.HomeEquity.StringFixed(2),
			s.NetWorth.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
