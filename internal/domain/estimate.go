package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EstimatePresets are the choices offered by the task form
var EstimatePresets = []string{"15 minutes", "30 minutes", "1 hour", "2 hours"}

var estimatePart = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z]*)`)

// ParseEstimate derives a duration from a free-form estimate such as
// "2 hrs 30 mins", "1 hour" or "45". Bare numbers are minutes.
func ParseEstimate(s string) (time.Duration, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, false
	}

	matches := estimatePart.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, m := range matches {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		unit, ok := estimateUnit(m[2])
		if !ok {
			return 0, false
		}
		total += time.Duration(n * float64(unit))
	}
	return total, true
}

func estimateUnit(word string) (time.Duration, bool) {
	switch word {
	case "", "m", "min", "mins", "minute", "minutes":
		return time.Minute, true
	case "h", "hr", "hrs", "hour", "hours":
		return time.Hour, true
	case "d", "day", "days":
		return 24 * time.Hour, true
	default:
		return 0, false
	}
}

// FormatEstimate renders a duration in the compact form shown on cards
func FormatEstimate(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
