package payslip

import (
	"strconv"
	"strings"
)

const (
	LabelBasicSalary    = "Basic Salary"
	LabelOvertime       = "Overtime"
	LabelFixedAllowance = "Fixed Allowance"

	LabelEPFEmployee   = "EPF Employee"
	LabelSOCSOEmployee = "SOCSO Employee"
	LabelEISEmployee   = "EIS Employee"
	LabelPCB           = "PCB/MTD"

	LabelEPFEmployer   = "EPF Employer"
	LabelSOCSOEmployer = "SOCSO Employer"
	LabelEISEmployer   = "EIS Employer"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
	FormatTemplate Format = "template"
	FormatVector   Format = "vector"
	FormatXLSX     Format = "xlsx"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return ContentTypeHTML
	case FormatXLSX:
		return ContentTypeXLSX
	default:
		return ContentTypePDF
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatXLSX:
		return "xlsx"
	default:
		return "pdf"
	}
}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(raw); f {
	case "":
		return FormatPDF, nil
	case FormatHTML, FormatPDF, FormatTemplate, FormatVector, FormatXLSX:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// Filename is the download name for an ad-hoc render, e.g. payslip-ali-bin-abu-march-2025.
func Filename(p Payslip) string {
	parts := []string{"payslip"}
	for _, field := range []string{p.Employee.Name, p.Period.Month} {
		if slug := slugify(field); slug != "" {
			parts = append(parts, slug)
		}
	}
	if p.Period.Year > 0 {
		parts = append(parts, strconv.Itoa(p.Period.Year))
	}
	return strings.Join(parts, "-")
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
