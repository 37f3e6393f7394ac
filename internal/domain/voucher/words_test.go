package voucher

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "ZERO RINGGIT ONLY"},
		{"1500.50", "ONE THOUSAND FIVE HUNDRED RINGGIT AND FIFTY SEN ONLY"},
		{"100", "ONE HUNDRED RINGGIT ONLY"},
		{"0.75", "SEVENTY FIVE SEN ONLY"},
		{"11", "ELEVEN RINGGIT ONLY"},
		{"21.05", "TWENTY ONE RINGGIT AND FIVE SEN ONLY"},
		{"1000000", "ONE MILLION RINGGIT ONLY"},
		{"2345678.9", "TWO MILLION THREE HUNDRED FORTY FIVE THOUSAND SIX HUNDRED SEVENTY EIGHT RINGGIT AND NINETY SEN ONLY"},
		{"3000000001", "THREE BILLION ONE RINGGIT ONLY"},
		{"99.999", "ONE HUNDRED RINGGIT ONLY"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, AmountToWords(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestSpellable(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"999999999999.99", true},
		{"999999999999.995", false},
		{"1000000000000", false},
		{"-50", false},
		{"-0.001", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Spellable(decimal.RequireFromString(tc.in)))
		})
	}
}

func TestTotalSumsClaims(t *testing.T) {
	claims := []Claim{
		{Category: "Travel", Amount: "RM 120.50"},
		{Category: "Meal", Amount: 35.2},
		{Category: "Parking", Amount: "n/a"},
		{Category: "Phone", Amount: nil},
	}
	assert.Equal(t, "155.70", Total(claims).StringFixed(2))
	assert.True(t, Voucher{}.Total().IsZero())
}

func TestTotalMatchesPrintedLines(t *testing.T) {
	claims := []Claim{
		{Category: "Toll", Amount: "10.005"},
		{Category: "Toll", Amount: "10.005"},
		{Category: "Meal", Amount: 3.333},
	}
	printed := decimal.Zero
	for _, c := range claims {
		printed = printed.Add(decimal.RequireFromString(c.Value().StringFixed(2)))
	}
	assert.Equal(t, "23.35", Total(claims).StringFixed(2))
	assert.True(t, Total(claims).Equal(printed))
	assert.Equal(t, "TWENTY THREE RINGGIT AND THIRTY FIVE SEN ONLY", AmountToWords(Total(claims)))
}

func TestPayeeDefaults(t *testing.T) {
	p := Payee{Name: "Aminah", BankName: "Maybank"}
	assert.Equal(t, NotStated, p.BankInfo())
	assert.Equal(t, NotStated, p.NRICOrDefault())

	p.AccountNumber = "1122334455"
	assert.Equal(t, "Maybank - 1122334455", p.BankInfo())
	assert.Equal(t, "Unknown Employee", Payee{}.NameOrDefault())
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "March", MonthName(3))
	assert.Equal(t, "Month 13", MonthName(13))
}
