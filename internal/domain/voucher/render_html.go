package voucher

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"utamahr/internal/domain/company"
	"utamahr/internal/platform/amount"
)

// HTMLRenderer executes the voucher template. The template is parsed on each call so
// edits on disk show up without a restart.
type HTMLRenderer struct {
	TemplatePath string
}

func NewHTMLRenderer(templatePath string) *HTMLRenderer {
	return &HTMLRenderer{TemplatePath: templatePath}
}

func (r *HTMLRenderer) Format() Format {
	return FormatHTML
}

type claimRow struct {
	Category string
	Amount   string
}

type htmlView struct {
	CompanyName string
	Letterhead  []string
	Voucher     Voucher
	PaymentDate string
	Month       string
	PayeeName   string
	NRIC        string
	Bank        string
	Claims      []claimRow
	Total       string
	Words       string
}

func (r *HTMLRenderer) Render(_ context.Context, v Voucher, co company.Settings) ([]byte, error) {
	if _, err := os.Stat(r.TemplatePath); errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(ErrTemplateNotFound, "%s", r.TemplatePath)
	}
	tpl, err := template.New(filepath.Base(r.TemplatePath)).ParseFiles(r.TemplatePath)
	if err != nil {
		return nil, errors.Wrap(err, "parse voucher template")
	}

	view := htmlView{
		CompanyName: upper.String(co.Name),
		Letterhead:  letterheadLines(co),
		Voucher:     v,
		PaymentDate: v.PaymentDateText(),
		Month:       v.MonthName(),
		PayeeName:   v.Payee.NameOrDefault(),
		NRIC:        v.Payee.NRICOrDefault(),
		Bank:        v.Payee.BankInfo(),
		Total:       amount.Fixed(v.Total()),
		Words:       AmountToWords(v.Total()),
	}
	for _, c := range v.Claims {
		view.Claims = append(view.Claims, claimRow{Category: upper.String(c.Category), Amount: amount.Fixed(c.Value())})
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, view); err != nil {
		return nil, errors.Wrap(err, "execute voucher template")
	}
	return buf.Bytes(), nil
}

func letterheadLines(co company.Settings) []string {
	lines := co.AddressLines()
	if locality := co.Locality(); locality != "" {
		lines = append(lines, locality)
	}
	if contact := co.Contact(); contact != "" {
		lines = append(lines, contact)
	}
	if co.Email != "" {
		lines = append(lines, "Email: "+co.Email)
	}
	return lines
}
