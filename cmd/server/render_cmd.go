package main

import (
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"utamahr/internal/app/server"
	"utamahr/internal/domain/company"
	"utamahr/internal/domain/payslip"
	"utamahr/internal/platform/browser"
)

func newRenderCmd() *cobra.Command {
	var (
		in     string
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a payslip record file without a database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			f, err := payslip.ParseFormat(format)
			if err != nil {
				return err
			}
			raw, err := readInput(in)
			if err != nil {
				return err
			}
			rec, err := payslip.DecodeRecord(raw)
			if err != nil {
				return err
			}

			var printer payslip.PDFPrinter
			if f == payslip.FormatPDF {
				printer = browser.NewChrome(cfg.ChromePath, cfg.BrowserTimeout, log)
			}
			p := payslip.Map(rec)
			p.Company = p.Company.Merge(company.Default())

			body, err := server.PayslipRenderers(cfg, printer).Render(cmd.Context(), p, f)
			if err != nil {
				return errors.Wrapf(err, "render %s", f)
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return errors.Wrap(err, "write output")
			}
			log.WithField("file", out).WithField("bytes", len(body)).Info("payslip rendered")
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "-", "Payslip record JSON file, - for stdin")
	cmd.Flags().StringVar(&out, "out", "", "Output file, stdout when empty")
	cmd.Flags().StringVar(&format, "format", string(payslip.FormatHTML), "Output format: pdf, html, template, vector or xlsx")
	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return raw, nil
}
