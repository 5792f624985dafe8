package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Separators used by every formatter in this package.
const (
	nbsp             = "\u00a0"
	decimalSeparator = ","
	groupSeparator   = nbsp
	currencySuffix   = nbsp + "€"

	groupSize = 3
)

// groupDigits inserts groupSeparator every three digits from the right of a
// non-negative integer digit string. Working on the string keeps values
// beyond the int64 range exact.
func groupDigits(digits string) string {
	if len(digits) <= groupSize {
		return digits
	}

	var b strings.Builder
	head := len(digits) % groupSize
	if head == 0 {
		head = groupSize
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += groupSize {
		b.WriteString(groupSeparator)
		b.WriteString(digits[i : i+groupSize])
	}
	return b.String()
}

// fixed renders d rounded to places decimals with grouping and a comma separator.
// When trim is set, trailing fractional zeros (and a bare separator) are dropped.
func fixed(d decimal.Decimal, places int32, trim bool) string {
	negative := d.IsNegative()
	s := d.Abs().StringFixed(places)

	intPart, fracPart, _ := strings.Cut(s, ".")
	if trim {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	out := groupDigits(intPart)
	if fracPart != "" {
		out += decimalSeparator + fracPart
	}

	if negative && strings.Trim(out, "0,"+nbsp) != "" {
		out = "-" + out
	}
	return out
}
