// Package duration implements the compact duration grammar used for task
// deadlines ("2h30m", "1d 5h", "45s") and the long-form phrases used when
// reporting how much time is left.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var tokenPattern = regexp.MustCompile(`(\d+)([dhms])`)

var units = map[string]time.Duration{
	"d": day,
	"h": time.Hour,
	"m": time.Minute,
	"s": time.Second,
}

// Parse scans text for every <digits><unit> token and returns their sum.
// Tokens may appear in any order with or without separators. When a unit is
// given more than once only its last occurrence counts. Anything that is not a
// token is ignored, so Parse never fails: empty or unrecognised input yields 0.
// Amounts too large for a time.Duration saturate at the maximum duration.
func Parse(text string) time.Duration {
	amounts := make(map[string]int64, len(units))
	for _, match := range tokenPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		amount, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			// Digit runs too long for int64.
			amount = math.MaxInt64
		}
		amounts[match[2]] = amount
	}

	var total time.Duration
	for unit, amount := range amounts {
		size := units[unit]
		if amount > int64(math.MaxInt64/size) {
			return math.MaxInt64
		}
		part := time.Duration(amount) * size
		if total > math.MaxInt64-part {
			return math.MaxInt64
		}
		total += part
	}
	return total
}

// Format renders d as days, hours, minutes and seconds, skipping zero parts:
// "2 hours, 5 minutes, and 1 second". Zero, negative and sub-second durations
// render as "0 seconds".
func Format(d time.Duration) string {
	total := int64(d / time.Second)
	if total <= 0 {
		return "0 seconds"
	}

	days, rem := total/86400, total%86400
	hours, rem := rem/3600, rem%3600
	minutes, seconds := rem/60, rem%60

	var parts []string
	for _, p := range []struct {
		n    int64
		unit string
	}{
		{days, "day"},
		{hours, "hour"},
		{minutes, "minute"},
		{seconds, "second"},
	} {
		if p.n > 0 {
			parts = append(parts, plural(p.n, p.unit))
		}
	}

	switch len(parts) {
	case 0:
		return "0 seconds"
	case 1:
		return parts[0]
	default:
		// Two parts go through the same join: "1 minute, and 30 seconds".
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
