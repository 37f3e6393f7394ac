package payslip

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"utamahr/internal/platform/browser"
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

func pageCount(doc []byte) int {
	return len(pageObject.FindAll(doc, -1))
}

func samplePayslip() Payslip {
	p := Map(sampleRecord())
	p.Company.Address = "Lot 5, Jalan Maju\n50450 Kuala Lumpur"
	return p
}

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payslip.html")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

type fakePrinter struct {
	html string
	page browser.PageOptions
	err  error
}

func (f *fakePrinter) PrintPDF(_ context.Context, html string, page browser.PageOptions) ([]byte, error) {
	f.html, f.page = html, page
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func TestSubstituteFillsPlaceholders(t *testing.T) {
	tpl := `<h1>{{company.name}}</h1><p>{{employee.name}} {{period.month}} {{period.year}}</p>
<span>{{income.basic}}</span><span>{{deduction.total}}</span><span>{{netIncome}}</span>
<div>{{incomeItems}}</div><div>{{deductionItems}}</div><i>{{unknown.token}}</i>
<b>{{ytd.mtd}}</b><b>{{ytd.employee}}</b>`

	out := Substitute(tpl, samplePayslip())

	assert.Contains(t, out, "<h1>Syarikat Maju Sdn Bhd</h1>")
	assert.Contains(t, out, "Ali bin Abu March 2025")
	assert.Contains(t, out, "<span>3,000.00</span>")
	assert.Contains(t, out, "<span>507.65</span>")
	assert.Contains(t, out, "<span>3,192.35</span>")
	assert.Contains(t, out, `<div>Bonus</div><div class="money">RM 500.00</div>`)
	assert.Contains(t, out, `<div>PCB/MTD</div><div class="money">RM 150.00</div>`)
	assert.Contains(t, out, "<i></i>")
	assert.Contains(t, out, "<b>450.00</b><b>1,072.95</b>")
	assert.NotContains(t, out, "{{")
}

func TestSubstituteEscapesValues(t *testing.T) {
	p := samplePayslip()
	p.Employee.Name = `<script>alert(1)</script>`

	out := Substitute(`{{employee.name}}`, p)
	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", out)
}

func TestHTMLRendererMissingTemplate(t *testing.T) {
	r := NewHTMLRenderer(filepath.Join(t.TempDir(), "missing.html"))
	_, err := r.Render(context.Background(), samplePayslip())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestBrowserPDFRendererPrintsFilledTemplate(t *testing.T) {
	printer := &fakePrinter{}
	r := NewBrowserPDFRenderer(writeTemplate(t, "<p>{{netIncome}}</p>"), printer)
	assert.Equal(t, FormatPDF, r.Format())

	out, err := r.Render(context.Background(), samplePayslip())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "<p>3,192.35</p>", printer.html)
	assert.Equal(t, PayslipPage, printer.page)
}

func TestBrowserPDFRendererPropagatesPrintFailure(t *testing.T) {
	printer := &fakePrinter{err: browser.ErrLaunch}
	r := NewBrowserPDFRenderer(writeTemplate(t, "<p>{{netIncome}}</p>"), printer)

	_, err := r.Render(context.Background(), samplePayslip())
	assert.ErrorIs(t, err, browser.ErrLaunch)
}

func writeBlankForm(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.pdf")
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(40, 40, "PAYSLIP FORM")
	require.NoError(t, pdf.OutputFileAndClose(path))
	return path
}

func TestFormRendererDrawsOnTemplate(t *testing.T) {
	r := NewFormRenderer(writeBlankForm(t))

	out, err := r.Render(context.Background(), samplePayslip())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(out))
}

func TestFormRendererMissingTemplate(t *testing.T) {
	r := NewFormRenderer(filepath.Join(t.TempDir(), "nope.pdf"))
	_, err := r.Render(context.Background(), samplePayslip())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestFormValues(t *testing.T) {
	values := FormValues(samplePayslip())
	for _, key := range formFieldOrder {
		_, ok := FormFields[key]
		assert.True(t, ok, "no position for %s", key)
	}
	assert.Equal(t, "RM 3,192.35", values["NET_INCOME"])
}

func TestVectorRendererProducesSinglePage(t *testing.T) {
	out, err := NewVectorRenderer().Render(context.Background(), samplePayslip())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 1, pageCount(out))
}

func TestXLSXRendererLayout(t *testing.T) {
	out, err := NewXLSXRenderer().Render(context.Background(), samplePayslip())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	a1, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "STRICTLY PRIVATE & CONFIDENTIAL", a1)
	a3, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Syarikat Maju Sdn Bhd", a3)

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, "Ali bin Abu", rowValue(rows, "NAME", 1))
	assert.Equal(t, "March", rowValue(rows, "MONTH", 1))
	assert.Equal(t, "RM 3,000.00", rowValue(rows, "BASIC SALARY", 2))
	assert.Equal(t, "RM 200.00", rowValue(rows, "FIXED ALLOWANCE", 2))
	assert.Equal(t, "RM 500.00", rowValue(rows, "BONUS", 2))
	assert.Equal(t, "RM 150.00", rowValue(rows, "PCB/MTD", 2))
	assert.Equal(t, "RM 3,700.00", rowValue(rows, "TOTAL GROSS INCOME", 2))
	assert.Equal(t, "RM 507.65", rowValue(rows, "TOTAL DEDUCTIONS", 2))
	assert.Equal(t, "RM 3,192.35", rowValue(rows, "NET INCOME", 4))
	assert.Equal(t, "MTD: RM 450.00", rowValue(rows, "MTD: RM 450.00", 0))

	layout, err := f.GetPageLayout(SheetName)
	require.NoError(t, err)
	require.NotNil(t, layout.Size)
	assert.Equal(t, xlsxPaperA4, *layout.Size)
}

func rowValue(rows [][]string, label string, offset int) string {
	for _, row := range rows {
		for i, v := range row {
			if v == label && i+offset < len(row) {
				return row[i+offset]
			}
		}
	}
	return ""
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(NewVectorRenderer(), NewXLSXRenderer())
	assert.Equal(t, []Format{FormatVector, FormatXLSX}, reg.Formats())

	_, err := reg.Render(context.Background(), samplePayslip(), FormatHTML)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
