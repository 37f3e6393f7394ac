package amount

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0"},
		{"float", 1500.5, "1500.5"},
		{"int", 42, "42"},
		{"currency string", "RM 1,234.50", "1234.5"},
		{"negative", "-12.30", "-12.3"},
		{"garbage", "abc", "0"},
		{"empty", "", "0"},
		{"double dot", "1.2.3", "0"},
		{"range", "100-200", "0"},
		{"trailing minus", "RM 1,234.50-", "0"},
		{"repeated decimals", "3,000.00.00", "0"},
		{"json number", json.Number("7.25"), "7.25"},
		{"bool", true, "0"},
		{"lone minus", "-", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestPresent(t *testing.T) {
	assert.False(t, Present(nil))
	assert.False(t, Present(""))
	assert.False(t, Present("0.00"))
	assert.True(t, Present("RM 5"))
	assert.True(t, Present(0.01))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234.50", Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0.00", Format(decimal.Zero))
	assert.Equal(t, "RM 3,500.00", FormatRM(decimal.NewFromInt(3500)))
	assert.Equal(t, "1500.50", Fixed(decimal.RequireFromString("1500.5")))
}

func TestSumAndCents(t *testing.T) {
	total := Sum(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.20"))
	assert.True(t, total.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, int64(150050), Cents(decimal.RequireFromString("1500.499")))
}
