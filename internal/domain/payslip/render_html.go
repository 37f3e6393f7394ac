package payslip

import (
	"context"
	"html"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"utamahr/internal/platform/amount"
)

var leftoverToken = regexp.MustCompile(`\{\{[A-Za-z0-9_.]+\}\}`)

// HTMLRenderer fills the placeholder template. With a printer it emits PDF, without one HTML.
type HTMLRenderer struct {
	TemplatePath string
	Printer      PDFPrinter
}

func NewHTMLRenderer(templatePath string) *HTMLRenderer {
	return &HTMLRenderer{TemplatePath: templatePath}
}

func NewBrowserPDFRenderer(templatePath string, printer PDFPrinter) *HTMLRenderer {
	return &HTMLRenderer{TemplatePath: templatePath, Printer: printer}
}

func (r *HTMLRenderer) Format() Format {
	if r.Printer != nil {
		return FormatPDF
	}
	return FormatHTML
}

func (r *HTMLRenderer) Render(ctx context.Context, p Payslip) ([]byte, error) {
	filled, err := FillTemplate(r.TemplatePath, p)
	if err != nil {
		return nil, err
	}
	if r.Printer == nil {
		return []byte(filled), nil
	}
	pdf, err := r.Printer.PrintPDF(ctx, filled, PayslipPage)
	if err != nil {
		return nil, errors.Wrap(err, "print payslip")
	}
	return pdf, nil
}

// FillTemplate loads the template from disk and substitutes every {{field.path}} token.
// Tokens the payslip has no value for are blanked.
func FillTemplate(templatePath string, p Payslip) (string, error) {
	raw, err := os.ReadFile(templatePath)
	if errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(ErrTemplateNotFound, "%s", templatePath)
	}
	if err != nil {
		return "", errors.Wrap(err, "read payslip template")
	}
	return Substitute(string(raw), p), nil
}

func Substitute(tpl string, p Payslip) string {
	values := placeholderValues(p)
	pairs := make([]string, 0, 2*len(values))
	for token, value := range values {
		pairs = append(pairs, "{{"+token+"}}", value)
	}
	filled := strings.NewReplacer(pairs...).Replace(tpl)
	return leftoverToken.ReplaceAllString(filled, "")
}

func placeholderValues(p Payslip) map[string]string {
	f := FiguresOf(p)
	esc := html.EscapeString
	money := amount.Format

	year := ""
	if p.Period.Year > 0 {
		year = strconv.Itoa(p.Period.Year)
	}
	return map[string]string{
		"company.name":     esc(p.Company.Name),
		"company.regNo":    esc(p.Company.RegNumber),
		"company.address":  esc(p.Company.Address),
		"company.logoHTML": p.Company.LogoHTML(),

		"employee.name":     esc(p.Employee.Name),
		"employee.icNo":     esc(p.Employee.ICNo),
		"employee.position": esc(p.Employee.Position),

		"period.month": esc(p.Period.Month),
		"period.year":  year,

		"income.basic":          money(f.Basic),
		"income.fixedAllowance": money(f.FixedAllowance),
		"income.totalGross":     money(p.Gross),
		"incomeItems":           itemRows(f.OtherIncome),

		"deduction.epfEmp":   money(f.EPFEmployee),
		"deduction.socsoEmp": money(f.SOCSOEmployee),
		"deduction.eisEmp":   money(f.EISEmployee),
		"deduction.total":    money(p.TotalDeduction),
		"deductionItems":     itemRows(f.OtherDeduction),

		"netIncome": money(p.NetPay),

		"employerContrib.epfEr":   money(f.EPFEmployer),
		"employerContrib.socsoEr": money(f.SOCSOEmployer),
		"employerContrib.eisEr":   money(f.EISEmployer),

		"ytd.employee": money(f.YTDEmployee),
		"ytd.employer": money(f.YTDEmployer),
		"ytd.mtd":      money(f.MTD),

		"ytd.breakdown.epfEmployee":   money(f.YTDEPFEmployee),
		"ytd.breakdown.socsoEmployee": money(f.YTDSOCSOEmployee),
		"ytd.breakdown.eisEmployee":   money(f.YTDEISEmployee),
		"ytd.breakdown.pcb":           money(f.MTD),
		"ytd.breakdown.epfEmployer":   money(f.YTDEPFEmployer),
		"ytd.breakdown.socsoEmployer": money(f.YTDSOCSOEmployer),
		"ytd.breakdown.eisEmployer":   money(f.YTDEISEmployer),
	}
}

func itemRows(items Items) string {
	rows := make([]string, 0, len(items))
	for _, item := range items.Visible() {
		rows = append(rows, `<div class="rowi"><div>`+html.EscapeString(item.Label)+
			`</div><div class="money">RM `+amount.Format(item.Amount)+`</div></div>`)
	}
	return strings.Join(rows, "\n      ")
}
