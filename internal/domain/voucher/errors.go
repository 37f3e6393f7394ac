package voucher

import "github.com/go-faster/errors"

var (
	ErrVoucherNotFound   = errors.New("voucher not found")
	ErrUnsupportedFormat = errors.New("unsupported voucher format")
	ErrTemplateNotFound  = errors.New("voucher template not found")
)
