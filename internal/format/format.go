// Package format renders numbers and currency amounts for advisor replies.
// All locale decisions live here so the templates stay locale-agnostic.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Grouping selects how the integer part of a number is split into groups.
type Grouping string

const (
	// GroupingIndian groups the last three digits, then pairs: 12,34,567.
	GroupingIndian Grouping = "indian"
	// GroupingWestern groups in threes: 1,234,567.
	GroupingWestern Grouping = "western"
)

// maxFractionDigits matches the default precision of browser locale formatting.
const maxFractionDigits = 3

// ParseGrouping validates a grouping name from config.
func ParseGrouping(s string) (Grouping, error) {
	switch g := Grouping(strings.ToLower(strings.TrimSpace(s))); g {
	case GroupingIndian, GroupingWestern:
		return g, nil
	default:
		return "", fmt.Errorf("unknown grouping %q (want %q or %q)", s, GroupingIndian, GroupingWestern)
	}
}

// Locale bundles a currency symbol with a digit grouping rule.
type Locale struct {
	Symbol   string
	Grouping Grouping
}

// Default is the locale replies are rendered in unless configured otherwise.
var Default = Locale{Symbol: "₹", Grouping: GroupingIndian}

// Number rounds v to at most three fraction digits and groups the integer part.
// Non-finite values print as ∞, -∞ and NaN.
func (l Locale) Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}

	d := decimal.NewFromFloat(v).Round(maxFractionDigits)
	neg := d.IsNegative()
	s := d.Abs().String()

	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := l.group(intPart)
	if hasFrac {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Currency prefixes the grouped absolute amount with the currency symbol.
// Negative amounts keep their sign in front of the symbol: -₹500.
func (l Locale) Currency(v float64) string {
	n := l.Number(v)
	if rest, ok := strings.CutPrefix(n, "-"); ok {
		return "-" + l.Symbol + rest
	}
	return l.Symbol + n
}

func (l Locale) group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	size := 3
	if l.Grouping == GroupingIndian {
		size = 2
	}

	var groups []string
	for len(head) > size {
		groups = append([]string{head[len(head)-size:]}, groups...)
		head = head[:len(head)-size]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

// Plain renders v in its shortest round-trip form without grouping: 8, 8.5, 820.
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
