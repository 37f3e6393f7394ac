package leave

import "context"

type StoreAPI interface {
	ListBalances(ctx context.Context, tenantID string, filter Filter) ([]BalanceRow, error)
	ListApprovedRequests(ctx context.Context, tenantID string, filter Filter) ([]Request, error)
}
