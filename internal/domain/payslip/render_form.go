package payslip

import (
	"bytes"
	"context"
	"os"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"utamahr/internal/platform/amount"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// FieldPos places one value on the pre-designed form. X and Y are PDF points with the
// origin at the bottom-left corner, as the form was measured.
type FieldPos struct {
	X     float64
	Y     float64
	Align Align
	Size  float64
	Bold  bool
}

const defaultFieldSize = 10

// FormFields is the coordinate map of the payslip form.
var FormFields = map[string]FieldPos{
	"NAME":     {X: 95, Y: 645, Bold: true},
	"IC":       {X: 95, Y: 625},
	"POSITION": {X: 95, Y: 605},
	"MONTH":    {X: 415, Y: 645, Bold: true},
	"YEAR":     {X: 415, Y: 625, Bold: true},

	"IN_BASIC": {X: 180, Y: 520, Align: AlignRight},
	"IN_FIXED": {X: 180, Y: 500, Align: AlignRight},
	"IN_GROSS": {X: 180, Y: 440, Align: AlignRight, Bold: true},

	"DED_EPF":   {X: 460, Y: 520, Align: AlignRight},
	"DED_SOCSO": {X: 460, Y: 500, Align: AlignRight},
	"DED_EIS":   {X: 460, Y: 480, Align: AlignRight},
	"DED_TOTAL": {X: 460, Y: 440, Align: AlignRight, Bold: true},

	"NET_INCOME": {X: 420, Y: 395, Align: AlignCenter, Size: 16, Bold: true},

	"EMP_EPFER":   {X: 140, Y: 340, Align: AlignCenter},
	"EMP_SOCSOER": {X: 305, Y: 340, Align: AlignCenter},
	"EMP_EISER":   {X: 470, Y: 340, Align: AlignCenter},

	"YTD_EMP": {X: 210, Y: 300, Align: AlignCenter},
	"YTD_ER":  {X: 510, Y: 300, Align: AlignCenter},
	"MTD":     {X: 120, Y: 280, Align: AlignCenter},
}

// formFieldOrder keeps drawing deterministic.
var formFieldOrder = []string{
	"NAME", "IC", "POSITION", "MONTH", "YEAR",
	"IN_BASIC", "IN_FIXED", "IN_GROSS",
	"DED_EPF", "DED_SOCSO", "DED_EIS", "DED_TOTAL",
	"NET_INCOME",
	"EMP_EPFER", "EMP_SOCSOER", "EMP_EISER",
	"YTD_EMP", "YTD_ER", "MTD",
}

// FormRenderer writes values over the first page of an existing PDF form.
type FormRenderer struct {
	FormPath string
}

func NewFormRenderer(formPath string) *FormRenderer {
	return &FormRenderer{FormPath: formPath}
}

func (r *FormRenderer) Format() Format {
	return FormatTemplate
}

func FormValues(p Payslip) map[string]string {
	f := FiguresOf(p)
	rm := amount.FormatRM
	year := ""
	if p.Period.Year > 0 {
		year = strconv.Itoa(p.Period.Year)
	}
	return map[string]string{
		"NAME":     p.Employee.Name,
		"IC":       p.Employee.ICNo,
		"POSITION": p.Employee.Position,
		"MONTH":    p.Period.Month,
		"YEAR":     year,

		"IN_BASIC": rm(f.Basic),
		"IN_FIXED": rm(f.FixedAllowance),
		"IN_GROSS": rm(p.Gross),

		"DED_EPF":   rm(f.EPFEmployee),
		"DED_SOCSO": rm(f.SOCSOEmployee),
		"DED_EIS":   rm(f.EISEmployee),
		"DED_TOTAL": rm(p.TotalDeduction),

		"NET_INCOME": rm(p.NetPay),

		"EMP_EPFER":   rm(f.EPFEmployer),
		"EMP_SOCSOER": rm(f.SOCSOEmployer),
		"EMP_EISER":   rm(f.EISEmployer),

		"YTD_EMP": rm(f.YTDEmployee),
		"YTD_ER":  rm(f.YTDEmployer),
		"MTD":     rm(f.MTD),
	}
}

func (r *FormRenderer) Render(_ context.Context, p Payslip) (out []byte, err error) {
	if _, statErr := os.Stat(r.FormPath); statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrTemplateNotFound, "%s", r.FormPath)
		}
		return nil, errors.Wrap(statErr, "stat payslip form")
	}
	// The importer panics on malformed input.
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = errors.Errorf("import payslip form: %v", rec)
		}
	}()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	tpl := gofpdi.ImportPage(pdf, r.FormPath, 1, "/MediaBox")
	gofpdi.UseImportedTemplate(pdf, tpl, 0, 0, pageW, pageH)

	drawFields(pdf, pageH, FormFields, formFieldOrder, FormValues(p))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "write payslip form")
	}
	return buf.Bytes(), nil
}

func drawFields(pdf *gofpdf.Fpdf, pageH float64, fields map[string]FieldPos, order []string, values map[string]string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, name := range order {
		pos, ok := fields[name]
		if !ok {
			continue
		}
		text := tr(values[name])
		if text == "" {
			continue
		}
		size := pos.Size
		if size == 0 {
			size = defaultFieldSize
		}
		style := ""
		if pos.Bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, size)
		x := pos.X
		switch pos.Align {
		case AlignRight:
			x -= pdf.GetStringWidth(text)
		case AlignCenter:
			x -= pdf.GetStringWidth(text) / 2
		}
		pdf.Text(x, pageH-pos.Y, text)
	}
}
