package voucher

import (
	"context"

	"utamahr/internal/domain/company"
)

type Renderer interface {
	Format() Format
	Render(ctx context.Context, v Voucher, co company.Settings) ([]byte, error)
}

type Registry map[Format]Renderer

func NewRegistry(renderers ...Renderer) Registry {
	reg := make(Registry, len(renderers))
	for _, r := range renderers {
		reg[r.Format()] = r
	}
	return reg
}
