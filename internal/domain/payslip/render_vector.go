package payslip

import (
	"bytes"
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"utamahr/internal/platform/amount"
)

// VectorRenderer draws the payslip layout with gofpdf primitives. It needs no template
// file, which makes it the fallback when neither the HTML nor the form is deployed.
type VectorRenderer struct{}

func NewVectorRenderer() *VectorRenderer {
	return &VectorRenderer{}
}

func (r *VectorRenderer) Format() Format {
	return FormatVector
}

const (
	vecMargin  = 15.0
	vecWidth   = 210.0 - 2*vecMargin
	vecHalf    = vecWidth / 2
	vecRowH    = 6.0
	vecHeaderH = 7.0
)

func (r *VectorRenderer) Render(_ context.Context, p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(vecMargin, vecMargin, vecMargin)
	pdf.SetAutoPageBreak(true, vecMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	f := FiguresOf(p)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 4, "STRICTLY PRIVATE & CONFIDENTIAL", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, tr(p.Company.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if p.Company.RegNumber != "" {
		pdf.CellFormat(0, 5, tr(p.Company.RegNumber), "", 1, "L", false, 0, "")
	}
	for _, line := range p.Company.AddressLines() {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
	y := pdf.GetY()
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(vecMargin, y, vecMargin+vecWidth, y)
	pdf.Ln(4)

	// Employee panel.
	year := ""
	if p.Period.Year > 0 {
		year = strconv.Itoa(p.Period.Year)
	}
	panelTop := pdf.GetY()
	pdf.SetFillColor(249, 250, 251)
	pdf.SetDrawColor(229, 231, 235)
	pdf.Rect(vecMargin, panelTop, vecWidth, 3*vecRowH+4, "FD")
	pdf.SetY(panelTop + 2)
	panelRow := func(leftLabel, leftValue, rightLabel, rightValue string) {
		pdf.SetX(vecMargin + 3)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(22, vecRowH, leftLabel, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(vecHalf-25, vecRowH, tr(leftValue), "", 0, "L", false, 0, "")
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(18, vecRowH, rightLabel, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, vecRowH, tr(rightValue), "", 1, "L", false, 0, "")
	}
	panelRow("NAME", p.Employee.Name, "MONTH", p.Period.Month)
	panelRow("I/C NO.", p.Employee.ICNo, "YEAR", year)
	panelRow("POSITION", p.Employee.Position, "", "")
	pdf.SetY(panelTop + 3*vecRowH + 8)

	// Income and deduction columns side by side.
	income := append(Items{
		{Label: "BASIC SALARY", Amount: f.Basic},
		{Label: "FIXED ALLOWANCE", Amount: f.FixedAllowance},
	}, f.OtherIncome...)
	deduction := append(Items{
		{Label: LabelEPFEmployee, Amount: f.EPFEmployee},
		{Label: LabelSOCSOEmployee, Amount: f.SOCSOEmployee},
		{Label: LabelEISEmployee, Amount: f.EISEmployee},
	}, f.OtherDeduction...)

	tableTop := pdf.GetY()
	drawColumn(pdf, tr, vecMargin, tableTop, "INCOME", income, "TOTAL GROSS INCOME", p.Gross, [3]int{68, 114, 196})
	drawColumn(pdf, tr, vecMargin+vecHalf, tableTop, "DEDUCTIONS", deduction, "TOTAL DEDUCTIONS", p.TotalDeduction, [3]int{197, 90, 90})
	rows := max(len(income), len(deduction))
	pdf.SetY(tableTop + vecHeaderH + float64(rows+1)*vecRowH + 6)

	// Net income emphasis.
	pdf.SetFillColor(240, 253, 244)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(vecHalf, 10, "NET INCOME", "1", 0, "L", true, 0, "")
	pdf.CellFormat(vecHalf, 10, amount.FormatRM(p.NetPay), "1", 1, "R", true, 0, "")
	pdf.SetLineWidth(0.2)
	pdf.Ln(5)

	// Employer contribution.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, vecRowH, "CURRENT MONTH EMPLOYER CONTRIBUTION", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	third := vecWidth / 3
	pdf.CellFormat(third, vecRowH, "EPF: "+amount.FormatRM(f.EPFEmployer), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, vecRowH, "SOCSO: "+amount.FormatRM(f.SOCSOEmployer), "1", 0, "C", false, 0, "")
	pdf.CellFormat(third, vecRowH, "EIS: "+amount.FormatRM(f.EISEmployer), "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Year to date.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, vecRowH, "YEAR TO DATE", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(vecHalf, vecRowH, "YTD EMPLOYEE CONTRIBUTION: "+amount.FormatRM(f.YTDEmployee), "1", 0, "L", false, 0, "")
	pdf.CellFormat(vecHalf, vecRowH, "YTD EMPLOYER CONTRIBUTION: "+amount.FormatRM(f.YTDEmployer), "1", 1, "L", false, 0, "")
	pdf.CellFormat(vecHalf, vecRowH, "MTD: "+amount.FormatRM(f.MTD), "1", 1, "L", false, 0, "")

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "draw payslip")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write payslip")
	}
	return buf.Bytes(), nil
}

func drawColumn(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title string, items Items, totalLabel string, total decimal.Decimal, fill [3]int) {
	pdf.SetXY(x, y)
	pdf.SetFillColor(fill[0], fill[1], fill[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(vecHalf, vecHeaderH, title, "1", 2, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetX(x)
		pdf.CellFormat(vecHalf*0.6, vecRowH, tr(item.Label), "L", 0, "L", false, 0, "")
		pdf.CellFormat(vecHalf*0.4, vecRowH, amount.FormatRM(item.Amount), "R", 2, "R", false, 0, "")
	}
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(vecHalf*0.6, vecRowH, totalLabel, "LTB", 0, "L", false, 0, "")
	pdf.CellFormat(vecHalf*0.4, vecRowH, amount.FormatRM(total), "RTB", 2, "R", false, 0, "")
}
