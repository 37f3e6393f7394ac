package voucher

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"utamahr/internal/platform/amount"
)

const NotStated = "Not Stated"

// Claim is one approved claim paid out by a voucher. Amount is stored loosely.
type Claim struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Amount      any    `json:"amount"`
}

// Value is the claim amount in whole sen, the figure printed on the voucher line.
func (c Claim) Value() decimal.Decimal {
	return amount.Parse(c.Amount).Round(2)
}

type Payee struct {
	EmployeeNo    string `json:"employeeNo"`
	Name          string `json:"name"`
	NRIC          string `json:"nric,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// BankInfo reads "Maybank - 1234567890" or Not Stated when either half is missing.
func (p Payee) BankInfo() string {
	bank, acct := strings.TrimSpace(p.BankName), strings.TrimSpace(p.AccountNumber)
	if bank == "" || acct == "" {
		return NotStated
	}
	return bank + " - " + acct
}

func (p Payee) NRICOrDefault() string {
	return orNotStated(p.NRIC)
}

func (p Payee) NameOrDefault() string {
	if strings.TrimSpace(p.Name) == "" {
		return "Unknown Employee"
	}
	return p.Name
}

type Voucher struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"-"`
	EmployeeID  string    `json:"employeeId"`
	Number      string    `json:"voucherNumber"`
	PaymentDate time.Time `json:"paymentDate"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Payee       Payee     `json:"payee"`
	Claims      []Claim   `json:"claims"`
}

// Total is always recomputed from the claims, so it equals the sum of the printed lines.
func (v Voucher) Total() decimal.Decimal {
	return Total(v.Claims)
}

func Total(claims []Claim) decimal.Decimal {
	total := decimal.Zero
	for _, c := range claims {
		total = total.Add(c.Value())
	}
	return total
}

func (v Voucher) MonthName() string {
	return MonthName(v.Month)
}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Month " + strconv.Itoa(month)
	}
	return time.Month(month).String()
}

// PaymentDateText formats as dd/mm/yyyy.
func (v Voucher) PaymentDateText() string {
	if v.PaymentDate.IsZero() {
		return ""
	}
	return v.PaymentDate.Format("02/01/2006")
}

func orNotStated(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotStated
	}
	return s
}

// Document is a rendered voucher ready for download.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
