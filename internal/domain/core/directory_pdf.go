package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"utamahr/internal/platform/pdfdoc"
)

const directoryFooter = "Dijana oleh UtamaHR Sistem"

// RenderDirectory lists employees on A4 pages with their identity, employment and contact details.
func RenderDirectory(_ context.Context, employees []Employee, generatedAt time.Time) ([]byte, error) {
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	pdf := pdfdoc.NewA4(20)
	pdfdoc.Footer(pdf, "Halaman", "daripada", directoryFooter)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, DirectoryName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 9, "UTAMAHR SISTEM", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Tarikh: "+pdfdoc.MalayDate(generatedAt), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Jumlah Pekerja: %d", len(employees)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	if len(employees) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, NoData, "", 1, "C", false, 0, "")
	}

	_, pageH := pdf.GetPageSize()
	const blockH = 10 + 8*6
	for i, emp := range employees {
		if pdf.GetY()+blockH > pageH-28 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, orDefault(emp.FullName, NoName))), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, field := range [][2]string{
			{"NRIC", emp.NRIC},
			{"Staff ID", emp.StaffID},
			{"Role", emp.Role},
			{"Syarikat", emp.Company},
			{"Jabatan", emp.Department},
			{"Jawatan", emp.Designation},
			{"Email", emp.Email},
			{"No Telefon", emp.Phone},
		} {
			pdf.SetX(25)
			pdf.CellFormat(30, 6, field[0]+":", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 6, tr(orDefault(field[1], NoData)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(5)
	}
	return pdfdoc.Bytes(pdf, "employee directory")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
