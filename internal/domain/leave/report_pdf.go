package leave

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"utamahr/internal/domain/company"
	"utamahr/internal/platform/pdfdoc"
)

const (
	margin   = 20.0
	tableW   = pdfdoc.A4Width - 2*margin
	rowH     = 7.0
	headerH  = 26.0
	noDataMY = "Tiada data"
)

// newDocument is swapped in tests to inspect uncompressed output.
var newDocument = pdfdoc.NewA4

var columns = []struct {
	title string
	width float64
	align string
}{
	{"No.", 15, "C"},
	{"Jenis Cuti", 60, "L"},
	{"Kelayakan", 25, "R"},
	{"Digunakan", 25, "R"},
	{"Baki Semasa", 25, "R"},
	{"Status", 20, "C"},
}

// Render draws one page per employee. With no employees it still emits a single page
// saying so.
func Render(_ context.Context, r Report) ([]byte, error) {
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if r.Company.Name == "" {
		r.Company.Name = company.DefaultName
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
	pdf := newDocument(margin)
	pdfdoc.Footer(pdf, "Halaman", "dari", "Dijana pada: "+pdfdoc.MalayDateTime(r.GeneratedAt))
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(r.Employees) == 0 {
		pdf.AddPage()
		drawHeader(pdf, tr, r)
		pdf.Ln(30)
		pdf.SetFont("Helvetica", "I", 12)
		pdf.SetTextColor(107, 114, 128)
		pdf.CellFormat(0, 10, noDataMY, "", 1, "C", false, 0, "")
		return pdfdoc.Bytes(pdf, "leave report")
	}

	for _, emp := range r.Employees {
		pdf.AddPage()
		drawHeader(pdf, tr, r)
		drawEmployee(pdf, tr, emp)
		drawTable(pdf, tr, emp.Breakdown)
		drawSummary(pdf, Summarize(emp.Breakdown))
	}
	return pdfdoc.Bytes(pdf, "leave report")
}

func drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, r Report) {
	top := pdf.GetY()
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(margin, top, tableW, headerH, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(margin+5, top+3)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(tableW-10, 7, tr(r.Company.Name), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(tableW-10, 7, tr(r.Title), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(tableW-10, 5, "Dijana pada: "+pdfdoc.MalayDate(r.GeneratedAt), "", 2, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(margin, top+headerH+3)

	var filters []string
	if r.Filter.ByDepartment() {
		filters = append(filters, "Jabatan: "+r.Filter.Department)
	}
	if r.Filter.Year > 0 {
		filters = append(filters, "Tahun: "+strconv.Itoa(r.Filter.Year))
	}
	if len(filters) > 0 {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(8, 145, 178)
		pdf.CellFormat(0, 5, tr("Tapisan: "+strings.Join(filters, " | ")), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(3)
}

func drawEmployee(pdf *gofpdf.Fpdf, tr func(string) string, emp Employee) {
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(229, 231, 235)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(tableW*0.7, 8, tr(emp.Name), "LT", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(tableW*0.3, 8, fmt.Sprintf("%d Jenis Cuti", len(emp.Breakdown)), "RT", 1, "R", true, 0, "")

	var details []string
	if emp.StaffID != "" {
		details = append(details, "No. Pekerja: "+emp.StaffID)
	}
	if emp.Department != "" {
		details = append(details, "Jabatan: "+emp.Department)
	}
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(tableW, 6, tr(strings.Join(details, "   ")), "LRB", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func drawTableHead(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(248, 250, 252)
	pdf.SetTextColor(55, 65, 81)
	pdf.SetDrawColor(229, 231, 235)
	for _, col := range columns {
		pdf.CellFormat(col.width, rowH, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func drawTable(pdf *gofpdf.Fpdf, tr func(string) string, rows []Breakdown) {
	drawTableHead(pdf)
	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, b := range rows {
		if pdf.GetY()+rowH > pageH-bottom-8 {
			pdf.AddPage()
			drawTableHead(pdf)
		}
		stripe := i%2 == 1
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetFillColor(249, 250, 251)
		cells := []string{
			strconv.Itoa(i + 1),
			tr(b.LeaveType),
			days(b.Entitlement),
			days(b.Taken),
			days(b.Balance),
		}
		for c, text := range cells {
			pdf.CellFormat(columns[c].width, rowH, text, "1", 0, columns[c].align, stripe, 0, "")
		}
		status := StatusFor(b)
		fill, text := status.Fill(), status.Text()
		pdf.SetFillColor(fill[0], fill[1], fill[2])
		pdf.SetTextColor(text[0], text[1], text[2])
		pdf.SetFont("Helvetica", "B", 8)
		last := columns[len(columns)-1]
		pdf.CellFormat(last.width, rowH, status.Label(), "1", 1, last.align, true, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(5)
}

func drawSummary(pdf *gofpdf.Fpdf, s Summary) {
	third := tableW / 3
	top := pdf.GetY()
	pdf.SetFillColor(248, 250, 252)
	pdf.Rect(margin, top, tableW, 16, "F")

	pdf.SetXY(margin, top+2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(15, 23, 42)
	for _, v := range []float64{s.Entitlement, s.Taken, s.Balance} {
		pdf.CellFormat(third, 6, days(v), "", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(107, 114, 128)
	for _, label := range []string{"Jumlah Kelayakan", "Jumlah Digunakan", "Jumlah Baki"} {
		pdf.CellFormat(third, 5, label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(top + 20)
}

func days(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
