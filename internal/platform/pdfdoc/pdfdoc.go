// Package pdfdoc holds the gofpdf plumbing shared by the report renderers.
package pdfdoc

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jung-kurt/gofpdf"
)

const (
	A4Width     = 210.0
	A4Height    = 297.0
	pageAliasNb = "{nb}"
)

var malayMonths = [...]string{
	"Januari", "Februari", "Mac", "April", "Mei", "Jun",
	"Julai", "Ogos", "September", "Oktober", "November", "Disember",
}

// NewA4 starts a portrait A4 document in millimetres with equal margins.
func NewA4(margin float64) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin+8)
	pdf.AliasNbPages(pageAliasNb)
	return pdf
}

// Footer prints "<word> i <of> n" at the bottom right of every page, plus an optional
// left-hand note.
func Footer(pdf *gofpdf.Fpdf, pageWord, ofWord, note string) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		left, _, right, bottom := pdf.GetMargins()
		w, h := pdf.GetPageSize()
		pdf.SetY(h - bottom)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		if note != "" {
			pdf.SetX(left)
			pdf.CellFormat((w-left-right)/2, 5, tr(note), "", 0, "L", false, 0, "")
		}
		pdf.SetX(w/2)
		pdf.CellFormat(w/2-right, 5, fmt.Sprintf("%s %d %s %s", pageWord, pdf.PageNo(), ofWord, pageAliasNb), "", 0, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
}

// Bytes finishes the document, surfacing any error gofpdf recorded while drawing.
func Bytes(pdf *gofpdf.Fpdf, what string) ([]byte, error) {
	if pdf.Err() {
		return nil, errors.Wrapf(pdf.Error(), "draw %s", what)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrapf(err, "write %s", what)
	}
	return buf.Bytes(), nil
}

// MalayDate renders 2025-03-07 as "7 Mac 2025".
func MalayDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), malayMonths[t.Month()-1], t.Year())
}

// MalayDateTime appends the 24h time, e.g. "7 Mac 2025, 14:05".
func MalayDateTime(t time.Time) string {
	return MalayDate(t) + ", " + t.Format("15:04")
}
