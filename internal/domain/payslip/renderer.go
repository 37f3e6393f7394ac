package payslip

import (
	"context"

	"utamahr/internal/platform/browser"
)

// Renderer turns a canonical payslip into one output format.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, p Payslip) ([]byte, error)
}

// PDFPrinter converts a filled HTML document into PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string, page browser.PageOptions) ([]byte, error)
}

// PayslipPage is the small printed page the HTML layout is designed for.
var PayslipPage = browser.PageOptions{
	WidthMM:         120,
	HeightMM:        170,
	MarginMM:        3,
	PrintBackground: true,
}

type Registry map[Format]Renderer

func NewRegistry(renderers ...Renderer) Registry {
	reg := make(Registry, len(renderers))
	for _, r := range renderers {
		reg[r.Format()] = r
	}
	return reg
}

func (r Registry) Render(ctx context.Context, p Payslip, format Format) ([]byte, error) {
	renderer, ok := r[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	return renderer.Render(ctx, p)
}

func (r Registry) Formats() []Format {
	out := make([]Format, 0, len(r))
	for _, f := range []Format{FormatPDF, FormatHTML, FormatTemplate, FormatVector, FormatXLSX} {
		if _, ok := r[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
