package payslip

import "github.com/shopspring/decimal"

var (
	keyBasic          = []string{"BASIC"}
	keyFixedAllowance = []string{"FIXED", "ALLOW"}
	keyEPF            = []string{"EPF"}
	keySOCSO          = []string{"SOCSO"}
	keyEIS            = []string{"EIS"}
	keyPCB            = []string{"PCB"}
	keyMTD            = []string{"MTD"}
)

// Figures exposes the fixed slots a pre-designed layout prints, read from the
// canonical line items by label.
type Figures struct {
	Basic          decimal.Decimal
	FixedAllowance decimal.Decimal
	OtherIncome    Items

	EPFEmployee    decimal.Decimal
	SOCSOEmployee  decimal.Decimal
	EISEmployee    decimal.Decimal
	OtherDeduction Items

	EPFEmployer   decimal.Decimal
	SOCSOEmployer decimal.Decimal
	EISEmployer   decimal.Decimal

	YTDEPFEmployee   decimal.Decimal
	YTDSOCSOEmployee decimal.Decimal
	YTDEISEmployee   decimal.Decimal
	YTDEPFEmployer   decimal.Decimal
	YTDSOCSOEmployer decimal.Decimal
	YTDEISEmployer   decimal.Decimal

	// YTDEmployee excludes the tax line, which is reported as MTD.
	YTDEmployee decimal.Decimal
	YTDEmployer decimal.Decimal
	MTD         decimal.Decimal
}

func FiguresOf(p Payslip) Figures {
	ytdTax := p.YTD.Employee.Amount(keyPCB...)
	if ytdTax.IsZero() {
		ytdTax = p.YTD.Employee.Amount(keyMTD...)
	}
	return Figures{
		Basic:          p.Income.Amount(keyBasic...),
		FixedAllowance: p.Income.Amount(keyFixedAllowance...),
		OtherIncome:    p.Income.WithoutFirst(keyBasic, keyFixedAllowance).Visible(),

		EPFEmployee:    p.Deduction.Amount(keyEPF...),
		SOCSOEmployee:  p.Deduction.Amount(keySOCSO...),
		EISEmployee:    p.Deduction.Amount(keyEIS...),
		OtherDeduction: p.Deduction.WithoutFirst(keyEPF, keySOCSO, keyEIS).Visible(),

		EPFEmployer:   p.EmployerContribution.Amount(keyEPF...),
		SOCSOEmployer: p.EmployerContribution.Amount(keySOCSO...),
		EISEmployer:   p.EmployerContribution.Amount(keyEIS...),

		YTDEPFEmployee:   p.YTD.Employee.Amount(keyEPF...),
		YTDSOCSOEmployee: p.YTD.Employee.Amount(keySOCSO...),
		YTDEISEmployee:   p.YTD.Employee.Amount(keyEIS...),
		YTDEPFEmployer:   p.YTD.Employer.Amount(keyEPF...),
		YTDSOCSOEmployer: p.YTD.Employer.Amount(keySOCSO...),
		YTDEISEmployer:   p.YTD.Employer.Amount(keyEIS...),

		YTDEmployee: p.YTD.Employee.Without(keyPCB, keyMTD).Total(),
		YTDEmployer: p.YTD.Employer.Total(),
		MTD:         ytdTax,
	}
}
