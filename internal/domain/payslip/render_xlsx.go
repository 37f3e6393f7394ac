package payslip

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"utamahr/internal/platform/amount"
)

const (
	SheetName      = "Payslip"
	xlsxPaperA4    = 9
	incomeColor    = "4472C4"
	deductionColor = "C55A5A"
)

// XLSXRenderer builds a workbook replicating the payslip layout with merges and borders.
type XLSXRenderer struct{}

func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (r *XLSXRenderer) Format() Format {
	return FormatXLSX
}

// sheetWriter records the first excelize error so the layout code reads top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(cell string, value any) {
	if w.err == nil {
		w.err = w.f.SetCellValue(w.sheet, cell, value)
	}
}

func (w *sheetWriter) merge(from, to string) {
	if w.err == nil {
		w.err = w.f.MergeCell(w.sheet, from, to)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err == nil {
		w.err = w.f.SetCellStyle(w.sheet, from, to, id)
	}
}

func (w *sheetWriter) newStyle(s *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(s)
	w.err = err
	return id
}

func (w *sheetWriter) rowHeight(row int, height float64) {
	if w.err == nil {
		w.err = w.f.SetRowHeight(w.sheet, row, height)
	}
}

// mergedText writes value into from and merges the range.
func (w *sheetWriter) mergedText(from, to string, value any, styleID int) {
	w.set(from, value)
	if from != to {
		w.merge(from, to)
	}
	if styleID != 0 {
		w.style(from, to, styleID)
	}
}

func cell(col string, row int) string {
	return col + strconv.Itoa(row)
}

func thin(sides ...string) []excelize.Border {
	out := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		out = append(out, excelize.Border{Type: side, Color: "000000", Style: 1})
	}
	return out
}

func thick(sides ...string) []excelize.Border {
	out := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		out = append(out, excelize.Border{Type: side, Color: "000000", Style: 5})
	}
	return out
}

func (r *XLSXRenderer) Render(_ context.Context, p Payslip) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, errors.Wrap(err, "name sheet")
	}
	w := &sheetWriter{f: f, sheet: SheetName}
	fig := FiguresOf(p)
	all := []string{"left", "right", "top", "bottom"}

	confidential := w.newStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Italic: true, Color: "666666"},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	companyName := w.newStyle(&excelize.Style{Font: &excelize.Font{Size: 18, Bold: true}})
	companyLine := w.newStyle(&excelize.Style{Font: &excelize.Font{Size: 11}})
	panelLabel := w.newStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "666666", Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F9FAFB"}, Pattern: 1},
		Border: thin(all...),
	})
	panelValue := w.newStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F9FAFB"}, Pattern: 1},
		Border: thin(all...),
	})
	header := func(color string) int {
		return w.newStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thin(all...),
		})
	}
	incomeHeader := header(incomeColor)
	deductionHeader := header(deductionColor)
	itemLabel := w.newStyle(&excelize.Style{Border: thin("left", "right")})
	itemAmount := w.newStyle(&excelize.Style{
		Border:    thin("left", "right"),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	totalLabel := w.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Border: thin(all...)})
	totalAmount := w.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Border:    thin(all...),
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	netLabel := w.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F0FDF4"}, Pattern: 1},
		Border:    thick(all...),
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	netAmount := w.newStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F0FDF4"}, Pattern: 1},
		Border:    thick(all...),
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	sectionTitle := w.newStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "6B7280"}})
	boxed := w.newStyle(&excelize.Style{
		Border:    thin(all...),
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	w.mergedText("A1", "H1", "STRICTLY PRIVATE & CONFIDENTIAL", confidential)

	w.mergedText("A3", "H3", p.Company.Name, companyName)
	w.rowHeight(3, 26)
	row := 4
	if p.Company.RegNumber != "" {
		w.mergedText(cell("A", row), cell("H", row), p.Company.RegNumber, companyLine)
		row++
	}
	for _, line := range p.Company.AddressLines() {
		w.mergedText(cell("A", row), cell("H", row), line, companyLine)
		row++
	}

	row = max(row+1, 8)
	year := ""
	if p.Period.Year > 0 {
		year = strconv.Itoa(p.Period.Year)
	}
	panel := [][4]string{
		{"NAME", p.Employee.Name, "MONTH", p.Period.Month},
		{"I/C NO.", p.Employee.ICNo, "YEAR", year},
		{"POSITION", p.Employee.Position, "", ""},
	}
	for _, line := range panel {
		w.mergedText(cell("A", row), cell("A", row), line[0], panelLabel)
		w.mergedText(cell("B", row), cell("D", row), line[1], panelValue)
		w.mergedText(cell("E", row), cell("E", row), line[2], panelLabel)
		w.mergedText(cell("F", row), cell("H", row), line[3], panelValue)
		row++
	}
	row++

	w.mergedText(cell("A", row), cell("D", row), "INCOME", incomeHeader)
	w.mergedText(cell("E", row), cell("H", row), "DEDUCTIONS", deductionHeader)
	w.rowHeight(row, 20)
	row++

	income := append(Items{
		{Label: "BASIC SALARY", Amount: fig.Basic},
		{Label: "FIXED ALLOWANCE", Amount: fig.FixedAllowance},
	}, fig.OtherIncome...)
	deduction := append(Items{
		{Label: "EPF", Amount: fig.EPFEmployee},
		{Label: "SOCSO", Amount: fig.SOCSOEmployee},
		{Label: "EIS", Amount: fig.EISEmployee},
	}, fig.OtherDeduction...)

	for i := 0; i < max(len(income), len(deduction)); i++ {
		if i < len(income) {
			w.mergedText(cell("A", row), cell("B", row), strings.ToUpper(income[i].Label), itemLabel)
			w.mergedText(cell("C", row), cell("D", row), amount.FormatRM(income[i].Amount), itemAmount)
		} else {
			w.style(cell("A", row), cell("D", row), itemLabel)
		}
		if i < len(deduction) {
			w.mergedText(cell("E", row), cell("F", row), strings.ToUpper(deduction[i].Label), itemLabel)
			w.mergedText(cell("G", row), cell("H", row), amount.FormatRM(deduction[i].Amount), itemAmount)
		} else {
			w.style(cell("E", row), cell("H", row), itemLabel)
		}
		row++
	}

	w.mergedText(cell("A", row), cell("B", row), "TOTAL GROSS INCOME", totalLabel)
	w.mergedText(cell("C", row), cell("D", row), amount.FormatRM(p.Gross), totalAmount)
	w.mergedText(cell("E", row), cell("F", row), "TOTAL DEDUCTIONS", totalLabel)
	w.mergedText(cell("G", row), cell("H", row), amount.FormatRM(p.TotalDeduction), totalAmount)
	row += 2

	w.mergedText(cell("A", row), cell("D", row), "NET INCOME", netLabel)
	w.mergedText(cell("E", row), cell("H", row), amount.FormatRM(p.NetPay), netAmount)
	w.rowHeight(row, 28)
	row += 2

	w.mergedText(cell("A", row), cell("H", row), "CURRENT MONTH EMPLOYER CONTRIBUTION", sectionTitle)
	row++
	w.mergedText(cell("A", row), cell("C", row), "EPF: "+amount.FormatRM(fig.EPFEmployer), boxed)
	w.mergedText(cell("D", row), cell("E", row), "SOCSO: "+amount.FormatRM(fig.SOCSOEmployer), boxed)
	w.mergedText(cell("F", row), cell("H", row), "EIS: "+amount.FormatRM(fig.EISEmployer), boxed)
	row += 2

	w.mergedText(cell("A", row), cell("H", row), fmt.Sprintf("YTD EMPLOYEE CONTRIBUTION: %s | YTD EMPLOYER CONTRIBUTION: %s",
		amount.FormatRM(fig.YTDEmployee), amount.FormatRM(fig.YTDEmployer)), 0)
	row++
	w.mergedText(cell("A", row), cell("H", row), "MTD: "+amount.FormatRM(fig.MTD), 0)

	if w.err == nil {
		w.err = f.SetColWidth(SheetName, "A", "H", 15)
	}
	if w.err == nil {
		size, orientation := xlsxPaperA4, "portrait"
		w.err = f.SetPageLayout(SheetName, &excelize.PageLayoutOptions{Size: &size, Orientation: &orientation})
	}
	if w.err != nil {
		return nil, errors.Wrap(w.err, "build payslip workbook")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write payslip workbook")
	}
	return buf.Bytes(), nil
}
