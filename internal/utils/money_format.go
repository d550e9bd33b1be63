package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount as a whole-dollar figure with thousands
// separators, e.g. 1234567.89 becomes "$1,234,568". Negative amounts keep
// the sign ahead of the dollar sign: "-$12,345".
func FormatUSD(amount decimal.Decimal) string {
	fixed := amount.StringFixed(0)
	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}
	grouped := groupThousands(fixed)
	if negative {
		return "-$" + grouped
	}
	return "$" + grouped
}

// FormatPercent renders a percentage value with one decimal place
// Example: 12.345 returns "12.3%"
func FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
