package contacts

import (
	"fmt"
	"math"
	"strings"
)

// FormatDebtAmount renders a shilling amount the way the debtor list shows it:
// "KSh 2,500" for whole amounts, "KSh 2,500.50" when cents are present.
func FormatDebtAmount(amount float64) string {
	if amount < 0 {
		return "-" + FormatDebtAmount(-amount)
	}

	whole := int64(amount)
	frac := amount - float64(whole)

	s := groupThousands(whole)
	if frac > 0 && math.Round(frac*100) > 0 {
		return fmt.Sprintf("KSh %s.%02d", s, int64(math.Round(frac*100)))
	}
	return "KSh " + s
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
