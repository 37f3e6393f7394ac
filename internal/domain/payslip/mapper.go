package payslip

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"utamahr/internal/domain/company"
	"utamahr/internal/platform/amount"
)

// DecodeRecord reads a stored payslip JSON document, keeping numbers exact.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return Record{}, errors.Wrapf(ErrInvalidRecord, "decode: %v", err)
	}
	return rec, nil
}

// ToNum coerces a stored amount. Unreadable values are zero.
func ToNum(v any) decimal.Decimal {
	return amount.Parse(v)
}

// Map normalizes a stored record into the canonical payslip. Each category prefers its
// explicit array; otherwise items are synthesized from the named fields in a fixed order.
// PCB is never synthesized from the named deduction field: it only arrives through
// deductions.additional so it cannot be counted twice.
func Map(rec Record) Payslip {
	p := Payslip{
		Employee: Employee{
			Name:     rec.Employee.FullName,
			ICNo:     rec.Employee.IC,
			Position: rec.Employee.Position,
		},
		Period: Period{Month: rec.Period.Month, Year: rec.Period.Year},
		Company: company.Settings{},
	}
	if rec.Company != nil {
		p.Company.Name = rec.Company.Name
		p.Company.RegNumber = rec.Company.RegNumber
		p.Company.Address = rec.Company.Address
	}

	p.Income = mapIncome(rec)
	p.Deduction = mapDeductions(rec)
	p.EmployerContribution = mapEmployerContribution(rec)
	p.YTD = YTD{Employee: mapYTDEmployee(rec), Employer: mapYTDEmployer(rec)}

	p.Gross = p.Income.Total()
	p.TotalDeduction = p.Deduction.Total()
	p.NetPay = p.Gross.Sub(p.TotalDeduction)
	return p
}

func mapIncome(rec Record) Items {
	if len(rec.IncomesArray) > 0 {
		return fromItems(rec.IncomesArray, false)
	}
	items := Items{}
	if rec.Income == nil {
		return items
	}
	if rec.Income.BasicSalary != nil {
		items = append(items, LineItem{Label: LabelBasicSalary, Amount: ToNum(rec.Income.BasicSalary)})
	}
	items = appendPresent(items, LabelOvertime, rec.Income.Overtime)
	items = appendPresent(items, LabelFixedAllowance, rec.Income.FixedAllowance)
	return append(items, fromItems(rec.Income.Additional, true)...)
}

func mapDeductions(rec Record) Items {
	if len(rec.DeductionsArray) > 0 {
		return fromItems(rec.DeductionsArray, false)
	}
	items := Items{}
	if rec.Deductions == nil {
		return items
	}
	items = appendPresent(items, LabelEPFEmployee, rec.Deductions.EPFEmployee)
	items = appendPresent(items, LabelSOCSOEmployee, rec.Deductions.SOCSOEmployee)
	items = appendPresent(items, LabelEISEmployee, rec.Deductions.EISEmployee)
	return append(items, fromItems(rec.Deductions.Additional, true)...)
}

func mapEmployerContribution(rec Record) Items {
	if len(rec.EmployerContribArray) > 0 {
		return fromItems(rec.EmployerContribArray, false)
	}
	items := Items{}
	if rec.Contributions == nil {
		return items
	}
	items = appendDefined(items, LabelEPFEmployer, rec.Contributions.EPFEmployer)
	items = appendDefined(items, LabelSOCSOEmployer, rec.Contributions.SOCSOEmployer)
	return appendDefined(items, LabelEISEmployer, rec.Contributions.EISEmployer)
}

func mapYTDEmployee(rec Record) Items {
	if len(rec.YTDEmployeeArray) > 0 {
		return fromItems(rec.YTDEmployeeArray, false)
	}
	items := Items{}
	if rec.YTD == nil || rec.YTD.Employee == nil {
		return items
	}
	ytd := rec.YTD.Employee
	items = appendDefined(items, LabelEPFEmployee, ytd.EPF)
	items = appendDefined(items, LabelSOCSOEmployee, ytd.SOCSO)
	items = appendDefined(items, LabelEISEmployee, ytd.EIS)
	return appendDefined(items, LabelPCB, ytd.PCB)
}

func mapYTDEmployer(rec Record) Items {
	if len(rec.YTDEmployerArray) > 0 {
		return fromItems(rec.YTDEmployerArray, false)
	}
	items := Items{}
	if rec.YTD == nil || rec.YTD.Employer == nil {
		return items
	}
	ytd := rec.YTD.Employer
	items = appendDefined(items, LabelEPFEmployer, ytd.EPF)
	items = appendDefined(items, LabelSOCSOEmployer, ytd.SOCSO)
	return appendDefined(items, LabelEISEmployer, ytd.EIS)
}

// fromItems converts stored items. Arrays are taken verbatim; additional items with a
// zero amount are dropped from both display and totals.
func fromItems(src []Item, dropZero bool) Items {
	out := make(Items, 0, len(src))
	for _, item := range src {
		value := ToNum(item.Amount)
		if dropZero && value.IsZero() {
			continue
		}
		out = append(out, LineItem{Label: item.Label, Amount: value})
	}
	return out
}

func appendPresent(items Items, label string, raw any) Items {
	if !amount.Present(raw) {
		return items
	}
	return append(items, LineItem{Label: label, Amount: ToNum(raw)})
}

func appendDefined(items Items, label string, raw any) Items {
	if raw == nil {
		return items
	}
	return append(items, LineItem{Label: label, Amount: ToNum(raw)})
}
