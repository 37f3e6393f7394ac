package voucher

import (
	"bytes"
	"context"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"utamahr/internal/domain/company"
	"utamahr/internal/platform/amount"
)

const (
	pageMargin   = 20.0
	pageWidth    = 210.0
	pageHeight   = 297.0
	contentWidth = pageWidth - 2*pageMargin
	lineH        = 5.5
	claimRowH    = 7.0
	signatureH   = 40.0
)

var upper = cases.Upper(language.English)

// PDFRenderer draws the payment voucher on A4 with gofpdf.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

func (r *PDFRenderer) Render(_ context.Context, v Voucher, co company.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	drawLetterhead(pdf, tr, co)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PAYMENT VOUCHER", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// PAID TO on the left, voucher details on the right.
	top := pdf.GetY()
	half := contentWidth / 2
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(half, lineH+1, "PAID TO:", "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		"Employee No: " + v.Payee.EmployeeNo,
		"Name: " + v.Payee.NameOrDefault(),
		"NRIC: " + v.Payee.NRICOrDefault(),
		"Bank / Cheque No.: " + v.Payee.BankInfo(),
	} {
		pdf.MultiCell(half-5, lineH, tr(line), "", "L", false)
	}
	leftBottom := pdf.GetY()

	rightX := pageMargin + half + 5
	detail := func(y float64, label, value string) {
		pdf.SetXY(rightX, y)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(40, lineH+1, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(half-45, lineH+1, tr(value), "", 0, "R", false, 0, "")
	}
	detail(top, "Payment Voucher No:", v.Number)
	detail(top+lineH+2, "Payment Date:", v.PaymentDateText())
	detail(top+2*(lineH+2), "Month:", v.MonthName())

	pdf.SetXY(pageMargin, max(leftBottom, top+3*(lineH+2))+8)
	drawClaimHeader(pdf)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(229, 231, 235)
	for _, claim := range v.Claims {
		if pdf.GetY()+claimRowH > pageHeight-pageMargin {
			pdf.AddPage()
			drawClaimHeader(pdf)
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetDrawColor(229, 231, 235)
		}
		pdf.CellFormat(contentWidth*0.7, claimRowH, tr(upper.String(claim.Category)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentWidth*0.3, claimRowH, amount.Fixed(claim.Value()), "B", 1, "R", false, 0, "")
	}

	total := v.Total()
	words := "MALAYSIA RINGGIT : " + AmountToWords(total)
	if pdf.GetY()+2*claimRowH+3*lineH > pageHeight-pageMargin {
		pdf.AddPage()
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetDrawColor(156, 163, 175)
	pdf.SetLineWidth(0.5)
	pdf.CellFormat(contentWidth*0.7, claimRowH+2, "MALAYSIA RINGGIT : TOTAL", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.3, claimRowH+2, amount.Fixed(total), "B", 1, "R", false, 0, "")
	pdf.SetLineWidth(0.2)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(contentWidth, lineH, words, "", "L", false)

	if pdf.GetY()+signatureH+20 > pageHeight-pageMargin {
		pdf.AddPage()
	}
	drawSignatures(pdf, pdf.GetY()+25)

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "draw voucher")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write voucher")
	}
	return buf.Bytes(), nil
}

func drawLetterhead(pdf *gofpdf.Fpdf, tr func(string) string, co company.Settings) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 7, tr(upper.String(co.Name)), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(55, 65, 81)
	lines := letterheadLines(co)
	for _, line := range lines {
		pdf.CellFormat(0, 4.5, tr(line), "", 1, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawClaimHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetDrawColor(156, 163, 175)
	pdf.CellFormat(contentWidth*0.7, claimRowH, "PAYMENT FOR:", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentWidth*0.3, claimRowH, "AMOUNT (RM)", "B", 1, "R", false, 0, "")
}

func drawSignatures(pdf *gofpdf.Fpdf, y float64) {
	const blockW = 45.0
	gap := (contentWidth - 3*blockW) / 2
	pdf.SetDrawColor(156, 163, 175)
	pdf.SetFont("Helvetica", "", 9)
	for i, label := range []string{"Prepared By", "Checked By", "Approved By"} {
		x := pageMargin + float64(i)*(blockW+gap)
		pdf.Line(x, y, x+blockW, y)
		pdf.SetXY(x, y+2)
		pdf.CellFormat(blockW, lineH, label, "", 0, "C", false, 0, "")
	}
}
