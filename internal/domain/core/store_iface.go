package core

import "context"

type StoreAPI interface {
	ListDirectory(ctx context.Context, tenantID string) ([]Employee, error)
}
