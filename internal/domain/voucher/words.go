package voucher

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = []string{"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE", "TEN",
		"ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN", "SEVENTEEN", "EIGHTEEN", "NINETEEN"}
	tens   = []string{"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY"}
	scales = []struct {
		size int64
		word string
	}{
		{1_000_000_000, "BILLION"},
		{1_000_000, "MILLION"},
		{1_000, "THOUSAND"},
	}

	// wordsLimit is the first amount, after rounding to sen, that AmountToWords cannot spell.
	wordsLimit = decimal.New(1, 12)
)

// Spellable reports whether d lies in the domain AmountToWords covers:
// zero up to 999,999,999,999.99 once rounded to sen.
func Spellable(d decimal.Decimal) bool {
	rounded := d.Round(2)
	return !rounded.IsNegative() && rounded.LessThan(wordsLimit)
}

// AmountToWords spells a Ringgit amount, e.g. 1500.50 is
// "ONE THOUSAND FIVE HUNDRED RINGGIT AND FIFTY SEN ONLY".
// Only amounts for which Spellable holds are meaningful; callers taking
// user input must check it first. The sign of anything else is ignored.
func AmountToWords(d decimal.Decimal) string {
	cents := d.Abs().Round(2).Shift(2).IntPart()
	ringgit, sen := cents/100, cents%100

	switch {
	case ringgit == 0 && sen == 0:
		return "ZERO RINGGIT ONLY"
	case ringgit == 0:
		return spell(sen) + " SEN ONLY"
	case sen == 0:
		return spell(ringgit) + " RINGGIT ONLY"
	}
	return spell(ringgit) + " RINGGIT AND " + spell(sen) + " SEN ONLY"
}

func spell(n int64) string {
	words := make([]string, 0, 8)
	for _, scale := range scales {
		if n >= scale.size {
			words = append(words, spell(n/scale.size), scale.word)
			n %= scale.size
		}
	}
	if n >= 100 {
		words = append(words, ones[n/100], "HUNDRED")
		n %= 100
	}
	if n >= 20 {
		words = append(words, tens[n/10])
		n %= 10
	}
	if n > 0 {
		words = append(words, ones[n])
	}
	return strings.Join(words, " ")
}
