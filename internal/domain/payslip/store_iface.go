package payslip

import "context"

type StoreAPI interface {
	GetPayslip(ctx context.Context, tenantID, payslipID string) (StoredPayslip, error)
}
