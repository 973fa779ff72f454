package output

import (
	"fmt"

	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/shopspring/decimal"
)

// Dataset is one plotted series of a chart.
type Dataset struct {
	Key    domain.SeriesKey  `json:"key"`
	Label  string            `json:"label"`
	Kind   string            `json:"kind"` // line or bar
	Axis   string            `json:"axis"`
	Values []decimal.Decimal `json:"values"`
}

// Chart is the renderer-neutral description of one surface.
type Chart struct {
	Surface  domain.Surface `json:"surface"`
	Title    string         `json:"title"`
	Labels   []string       `json:"labels"`
	Datasets []Dataset      `json:"datasets"`
}

type seriesSpec struct {
	key   domain.SeriesKey
	label string
	kind  string
	axis  string
}

var surfaceSeries = map[domain.Surface][]seriesSpec{
	domain.SurfaceMortgage: {
		{domain.SeriesBalance, "Balance Remaining", "line", "y"},
		{domain.SeriesPrincipal, "Principal Paid (Per Year)", "bar", "y1"},
		{domain.SeriesInterest, "Interest per Month (At Year End)", "line", "y2"},
	},
	domain.SurfacePortfolio: {
		{domain.SeriesPortfolio, "Portfolio Value", "line", "y"},
		{domain.SeriesPortfolioPayment, "Monthly Payment (Withdrawn)", "line", "y1"},
	},
	domain.SurfaceNetWorth: {
		{domain.SeriesNetWorth, "Total Net Worth", "line", "y"},
		{domain.SeriesHomeEquity, "Home Equity", "line", "y"},
		{domain.SeriesPortfolio, "Portfolio Value", "line", "y"},
	},
}

// ChartFor builds the datasets for one surface from an already-projected series.
func ChartFor(surface domain.Surface, p *domain.Projection) (Chart, error) {
	specs, ok := surfaceSeries[surface]
	if !ok {
		return Chart{}, fmt.Errorf("%w: %q", ErrUnknownSurface, surface)
	}
	c := Chart{
		Surface:  surface,
		Title:    surface.Title(),
		Labels:   p.Labels(),
		Datasets: make([]Dataset, 0, len(specs)),
	}
	for _, s := range specs {
		c.Datasets = append(c.Datasets, Dataset{
			Key:    s.key,
			Label:  s.label,
			Kind:   s.kind,
			Axis:   s.axis,
			Values: roundAll(p.Series(s.key)),
		})
	}
	return c, nil
}

// ChartsFor builds every surface, each from the same projection.
func ChartsFor(p *domain.Projection) []Chart {
	charts := make([]Chart, 0, len(domain.AllSurfaces))
	for _, s := range domain.AllSurfaces {
		c, _ := ChartFor(s, p)
		charts = append(charts, c)
	}
	return charts
}

func roundAll(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = v.Round(2)
	}
	return out
}
