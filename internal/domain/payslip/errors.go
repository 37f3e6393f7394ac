package payslip

import "github.com/go-faster/errors"

var (
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrTemplateNotFound  = errors.New("payslip template not found")
	ErrUnsupportedFormat = errors.New("unsupported payslip format")
	ErrInvalidRecord     = errors.New("invalid payslip record")
)
