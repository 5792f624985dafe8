package format

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Precision thresholds.
const (
	// fullPrecisionBelow is the price under which eight decimals are shown.
	fullPrecisionBelow = 1.0
	// smallValueBelow is the volume/market-cap value under which eight decimals are shown.
	smallValueBelow = 0.1

	fullPrecisionPlaces = 8
	currencyPlaces      = 2
	percentPlaces       = 2
	supplyPlaces        = 3

	minutesPerHour = 60
)

// TimestampLayout matches the day-first local date-time shape of the dashboard header.
const TimestampLayout = "02/01/2006, 15:04:05"

// Price formats a price in euros.
// Example: Price(1234.5) returns "1 234,50 €"; Price(0.05) returns "0,05000000 €".
func Price(v float64) string {
	if v < fullPrecisionBelow {
		return fullPrecision(v)
	}
	return fixed(decimal.NewFromFloat(v), currencyPlaces, false) + currencySuffix
}

// Small formats volume and market-cap values: below 0.1 the eight-decimal form, else Price.
func Small(v float64) string {
	if v < smallValueBelow {
		return fullPrecision(v)
	}
	return Price(v)
}

func fullPrecision(v float64) string {
	return fixed(decimal.NewFromFloat(v), fullPrecisionPlaces, false) + currencySuffix
}

// Percent formats a percentage with two decimals, e.g. "-1,25%".
func Percent(v float64) string {
	return fixed(decimal.NewFromFloat(v), percentPlaces, false) + "%"
}

// SignedPercent is Percent with an explicit "+" for non-negative values.
func SignedPercent(v float64) string {
	if v >= 0 {
		return "+" + Percent(v)
	}
	return Percent(v)
}

// Supply formats a circulating supply with grouping and at most three decimals.
// Example: Supply(19700000) returns "19 700 000".
func Supply(v float64) string {
	return fixed(decimal.NewFromFloat(v), supplyPlaces, true)
}

// Rank formats a market-cap rank as "#N", or "-" when the endpoint sent none.
func Rank(r int) string {
	if r <= 0 {
		return "-"
	}
	return "#" + strconv.Itoa(r)
}

// Timestamp formats t in local time, e.g. "19/10/2026, 14:03:05".
// The zero time renders as an empty string.
func Timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimestampLayout)
}

// Duration formats a countdown in a compact human form.
// Examples: "42s", "1m", "1m30s", "2h5m". Negative durations render as "0s".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % minutesPerHour
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % minutesPerHour
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, minutes)
}
