package payslip

import (
	"strings"

	"github.com/shopspring/decimal"

	"utamahr/internal/domain/company"
)

// Item is a stored line item. Amount is whatever the record held: a number or a
// formatted string such as "RM 1,200.00".
type Item struct {
	Label  string `json:"label"`
	Amount any    `json:"amount"`
}

type RecordEmployee struct {
	FullName string `json:"fullName"`
	IC       string `json:"ic,omitempty"`
	Position string `json:"position,omitempty"`
}

type RecordPeriod struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

type RecordCompany struct {
	Name      string `json:"name,omitempty"`
	RegNumber string `json:"regNumber,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Named-field representations. A nil field means the record never set it.
type IncomeFields struct {
	BasicSalary    any    `json:"basicSalary,omitempty"`
	Overtime       any    `json:"overtime,omitempty"`
	FixedAllowance any    `json:"fixedAllowance,omitempty"`
	Additional     []Item `json:"additional,omitempty"`
}

type DeductionFields struct {
	EPFEmployee   any    `json:"epfEmployee,omitempty"`
	SOCSOEmployee any    `json:"socsoEmployee,omitempty"`
	EISEmployee   any    `json:"eisEmployee,omitempty"`
	PCB           any    `json:"pcb,omitempty"`
	Additional    []Item `json:"additional,omitempty"`
}

type ContributionFields struct {
	EPFEmployer   any `json:"epfEmployer,omitempty"`
	SOCSOEmployer any `json:"socsoEmployer,omitempty"`
	EISEmployer   any `json:"eisEmployer,omitempty"`
}

type YTDEmployeeFields struct {
	EPF   any `json:"epf,omitempty"`
	SOCSO any `json:"socso,omitempty"`
	EIS   any `json:"eis,omitempty"`
	PCB   any `json:"pcb,omitempty"`
}

type YTDEmployerFields struct {
	EPF   any `json:"epf,omitempty"`
	SOCSO any `json:"socso,omitempty"`
	EIS   any `json:"eis,omitempty"`
}

type YTDFields struct {
	Employee *YTDEmployeeFields `json:"employee,omitempty"`
	Employer *YTDEmployerFields `json:"employer,omitempty"`
}

// Record is a payslip as stored: either named sub-objects or itemized arrays per category.
type Record struct {
	Employee      RecordEmployee      `json:"employee"`
	Period        RecordPeriod        `json:"period"`
	Company       *RecordCompany      `json:"company,omitempty"`
	Income        *IncomeFields       `json:"income,omitempty"`
	Deductions    *DeductionFields    `json:"deductions,omitempty"`
	Contributions *ContributionFields `json:"contributions,omitempty"`
	YTD           *YTDFields          `json:"ytd,omitempty"`

	IncomesArray         []Item `json:"incomesArray,omitempty"`
	DeductionsArray      []Item `json:"deductionsArray,omitempty"`
	EmployerContribArray []Item `json:"employerContribArray,omitempty"`
	YTDEmployeeArray     []Item `json:"ytdEmployeeArray,omitempty"`
	YTDEmployerArray     []Item `json:"ytdEmployerArray,omitempty"`
}

type LineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type Items []LineItem

func (items Items) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// Visible drops zero rows.
func (items Items) Visible() Items {
	out := make(Items, 0, len(items))
	for _, item := range items {
		if !item.Amount.IsZero() {
			out = append(out, item)
		}
	}
	return out
}

// Amount returns the first item whose label contains every keyword, case-insensitively.
func (items Items) Amount(keywords ...string) decimal.Decimal {
	if item, ok := items.Find(keywords...); ok {
		return item.Amount
	}
	return decimal.Zero
}

func (items Items) Find(keywords ...string) (LineItem, bool) {
	for _, item := range items {
		if labelMatches(item.Label, keywords) {
			return item, true
		}
	}
	return LineItem{}, false
}

// Without returns the items that do not match any of the given label groups.
func (items Items) Without(groups ...[]string) Items {
	out := make(Items, 0, len(items))
	for _, item := range items {
		matched := false
		for _, keywords := range groups {
			if labelMatches(item.Label, keywords) {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, item)
		}
	}
	return out
}

// WithoutFirst drops, per label group, only the first matching item: the one a
// fixed slot already shows. Later matches stay so they can print as extra rows.
func (items Items) WithoutFirst(groups ...[]string) Items {
	taken := make(map[int]bool, len(groups))
	for _, keywords := range groups {
		for i, item := range items {
			if !taken[i] && labelMatches(item.Label, keywords) {
				taken[i] = true
				break
			}
		}
	}
	out := make(Items, 0, len(items))
	for i, item := range items {
		if !taken[i] {
			out = append(out, item)
		}
	}
	return out
}

func labelMatches(label string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	upper := strings.ToUpper(label)
	for _, kw := range keywords {
		if !strings.Contains(upper, strings.ToUpper(kw)) {
			return false
		}
	}
	return true
}

type Employee struct {
	Name     string `json:"name"`
	ICNo     string `json:"icNo"`
	Position string `json:"position"`
}

type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

type YTD struct {
	Employee Items `json:"employee"`
	Employer Items `json:"employer"`
}

// Payslip is the canonical shape every renderer consumes.
type Payslip struct {
	Employee             Employee         `json:"employee"`
	Period               Period           `json:"period"`
	Company              company.Settings `json:"company"`
	Income               Items            `json:"income"`
	Deduction            Items            `json:"deduction"`
	EmployerContribution Items            `json:"employerContribution"`
	YTD                  YTD              `json:"ytd"`
	Gross                decimal.Decimal  `json:"gross"`
	TotalDeduction       decimal.Decimal  `json:"totalDeduction"`
	NetPay               decimal.Decimal  `json:"netPay"`
}

// StoredPayslip is a payslip row with its owner, used for access checks.
type StoredPayslip struct {
	ID         string
	TenantID   string
	EmployeeID string
	Record     Record
}
