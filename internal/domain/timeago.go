package domain

import (
	"strconv"
	"time"
)

// FormatTimeAgo renders the age of t relative to now in the compact form used
// on question cards: "42m ago", "5h ago", "3d ago". Minutes are floored, and
// timestamps in the future read as "0m ago".
func FormatTimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	switch {
	case minutes < 60:
		return strconv.Itoa(minutes) + "m ago"
	case minutes < 24*60:
		return strconv.Itoa(minutes/60) + "h ago"
	default:
		return strconv.Itoa(minutes/(24*60)) + "d ago"
	}
}
