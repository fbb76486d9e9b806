package views

import (
	"strconv"
	"time"
)

// DateLayout is how timestamps are shown, e.g. "15 Jan 2025, 10:30 AM".
const DateLayout = "02 Jan 2006, 03:04 PM"

// FormatDate renders t, or "N/A" when there is no timestamp.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}

// FormatRupees renders n with Indian digit grouping: ₹1,00,000.
func FormatRupees(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return sign + "₹" + s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var out []byte
	for i, r := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			out = append(out, ',')
		}
		out = append(out, r)
	}
	return sign + "₹" + string(out) + "," + tail
}
