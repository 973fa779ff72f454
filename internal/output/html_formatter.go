package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/rpgo/mortgage-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with the summary, a yearly table and
// the chart data for every surface embedded as JSON.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

//go:embed templates/chart.html.tmpl
var chartTemplateSource string

var templateFuncs = template.FuncMap{
	"curr":  FormatCurrency,
	"cents": FormatCurrencyCents,
	"pct":   FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}

var htmlTemplate = template.Must(template.New("report").Funcs(templateFuncs).Parse(htmlTemplateSource))

var chartTemplate = template.Must(template.New("chart").Funcs(templateFuncs).Parse(chartTemplateSource))

func (h HTMLFormatter) Format(p *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Projection
		Analysis    Analysis
		Assumptions []string
		Charts      []Chart
		Generated   time.Time
	}{p, AnalyzeProjection(p), GenerateAssumptions(p), ChartsFor(p), nowFunc()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
