package output

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/rpgo/mortgage-projector/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 20.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter produces an A4 report: a summary page followed by the yearly table.
type PDFFormatter struct{}

func (f PDFFormatter) Name() string { return "pdf" }

func (f PDFFormatter) Format(p *domain.Projection) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetCreationDate(nowFunc())
	pdf.SetTitle("Mortgage & Net Worth Projection", false)

	addPDFSummaryPage(pdf, p)
	addPDFYearlyTable(pdf, p)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfHeading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, text, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
}

func addPDFSummaryPage(pdf *fpdf.Fpdf, p *domain.Projection) {
	a := AnalyzeProjection(p)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "Mortgage & Net Worth Projection", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(pdfContentWidth, 6, fmt.Sprintf("Generated: %s", nowFunc().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdfHeading(pdf, "Loan Summary")
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	rows := [][2]string{
		{"Monthly Payment", FormatCurrency(p.Summary.MonthlyPayment)},
		{"Total Interest", FormatCurrency(p.Summary.TotalInterest)},
		{"Total Cost", FormatCurrency(p.Summary.TotalCost)},
		{"Payoff", a.PayoffLabel},
	}
	if p.Summary.PayoffDate != nil {
		rows = append(rows, [2]string{"Payoff Date", p.Summary.PayoffDate.Format("January 2006")})
	}
	if a.MonthsSaved > 0 {
		rows = append(rows,
			[2]string{"Months Saved", intToString(a.MonthsSaved)},
			[2]string{"Interest Saved", FormatCurrency(a.InterestSaved)},
		)
	}
	rows = append(rows, [2]string{"Net Worth at " + a.FinalLabel, FormatCurrency(a.FinalNetWorth)})
	for i, r := range rows {
		fill := i%2 == 0
		pdf.CellFormat(70, 7, r[0], "1", 0, "L", fill, 0, "")
		pdf.CellFormat(pdfContentWidth-70, 7, r[1], "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(6)

	pdfHeading(pdf, "Key Assumptions")
	for _, line := range GenerateAssumptions(p) {
		pdf.MultiCell(pdfContentWidth, 5, "- "+line, "", "L", false)
	}
	if a.PortfolioNegativeFrom != "" {
		pdf.Ln(3)
		pdf.SetTextColor(207, 34, 46)
		pdf.MultiCell(pdfContentWidth, 5, "The portfolio is overdrawn from "+a.PortfolioNegativeFrom+".", "", "L", false)
	}
}

func addPDFYearlyTable(pdf *fpdf.Fpdf, p *domain.Projection) {
	pdf.AddPage()
	pdfHeading(pdf, "Yearly Projection")

	headers := []string{"Period", "Balance", "Principal", "Int/Month", "Portfolio", "Equity", "Net Worth"}
	widths := []float64{22, 26, 24, 22, 28, 28, 30}

	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(0, 51, 102)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		pdf.SetFillColor(245, 247, 250)
	}
	writeHeader()

	for i, s := range p.Samples {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}
		fill := i%2 == 1
		cells := []string{
			s.Label,
			FormatCurrency(s.BalanceRemaining),
			FormatCurrency(s.PrincipalThisPeriod),
			FormatCurrency(s.InterestThisPeriod),
			FormatCurrency(s.PortfolioValue),
			FormatCurrency(s.HomeEquity),
			FormatCurrency(s.NetWorth),
		}
		for j, c := range cells {
			align := "R"
			if j == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 6, c, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
}
