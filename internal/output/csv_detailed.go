package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// CSVDetailedExporter provides every sample field, including the simulation month and
// whether the sample is the payoff point.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(p *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Month", "Year", "Label", "Balance", "InterestThisPeriod", "PrincipalThisPeriod", "Portfolio", "PortfolioPayment", "HomeValue", "HomeEquity", "NetWorth", "IsPayoff"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range p.Samples {
		row := []string{
			intToString(s.Month),
			s.Year.String(),
			s.Label,
			s.BalanceRemaining.StringFixed(2),
			s.InterestThisPeriod.StringFixed(2),
			s.PrincipalThisPeriod.StringFixed(2),
			s.PortfolioValue.StringFixed(2),
			s.PortfolioPayment.StringFixed(2),
			s.HomeValue.StringFixed(2),
			s.HomeEquity.StringFixed(2),
			s.NetWorth.StringFixed(2),
			boolToString(s.Month == p.Summary.PayoffMonth),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
