package company

import "github.com/go-faster/errors"

var ErrSettingsNotFound = errors.New("company settings not found")
