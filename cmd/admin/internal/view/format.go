package view

import (
	"fmt"
	"strconv"
	"time"
)

// FormatRupiah renders an amount like Rp1.050.000.
func FormatRupiah(amount int64) string {
	s := strconv.FormatInt(amount, 10)

	neg := false
	if amount < 0 {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}

		out = append(out, c)
	}

	if neg {
		return fmt.Sprintf("-Rp%s", out)
	}

	return fmt.Sprintf("Rp%s", out)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
