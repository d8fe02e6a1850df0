package utils

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hance08/bankdash/internal/constants"
)

// FormatAmount renders an amount the way it is matched against search text:
// plain decimal, no grouping, trailing zeros trimmed ("20", "12.5").
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatMoney renders an amount for display, grouped with two decimals.
func FormatMoney(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

// FormatTime renders a timestamp in the human form shown in tables and
// matched by the search box.
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	if layout == "" {
		layout = constants.DisplayTime
	}
	return t.Local().Format(layout)
}

// Ago renders a relative timestamp ("3 days ago").
func Ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
