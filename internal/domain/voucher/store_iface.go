package voucher

import "context"

type StoreAPI interface {
	GetVoucher(ctx context.Context, tenantID, voucherID string) (Voucher, error)
}
