package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatVND renders a dong amount with dot thousand separators, e.g.
// "1.500.000 VND". Fractions are rounded; dong has no minor unit.
func FormatVND(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + formatThousand(n) + " VND"
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
