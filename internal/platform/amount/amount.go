// Package amount coerces loosely typed money values and formats them for Ringgit documents.
package amount

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const CurrencyPrefix = "RM"

var (
	nonNumeric  = regexp.MustCompile(`[^\d.-]`)
	plainFormat = money.NewFormatter(2, ".", ",", "", "1")
)

// Parse turns numbers and formatted strings such as "RM 1,234.50" into a decimal.
// Anything it cannot read becomes zero.
func Parse(v any) decimal.Decimal {
	switch value := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return value
	case *decimal.Decimal:
		if value == nil {
			return decimal.Zero
		}
		return *value
	case float64:
		return decimal.NewFromFloat(value)
	case float32:
		return decimal.NewFromFloat32(value)
	case int:
		return decimal.NewFromInt(int64(value))
	case int64:
		return decimal.NewFromInt(value)
	case int32:
		return decimal.NewFromInt32(value)
	case json.Number:
		return ParseString(value.String())
	case string:
		return ParseString(value)
	case bool:
		return decimal.Zero
	default:
		return ParseString(fmt.Sprint(value))
	}
}

// ParseString strips everything but digits, dots and minus signs, then reads
// what is left as a whole. "1.2.3" and "100-200" become zero, not a prefix.
func ParseString(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return decimal.Zero
	}
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

// Present reports whether a raw field carries a value worth showing: not nil, not blank, not zero.
func Present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return !Parse(v).IsZero()
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// Format renders 1234.5 as "1,234.50".
func Format(d decimal.Decimal) string {
	return plainFormat.Format(Cents(d))
}

// FormatRM renders 1234.5 as "RM 1,234.50".
func FormatRM(d decimal.Decimal) string {
	return CurrencyPrefix + " " + Format(d)
}

// Fixed renders two decimals without grouping, as printed on vouchers.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
