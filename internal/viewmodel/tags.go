package viewmodel

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dori/taskflow/internal/model"
)

// PriorityLabel returns the display label for a priority. Unknown values pass through.
func PriorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "High"
	case model.PriorityMedium:
		return "Medium"
	case model.PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// StatusLabel returns the display label for a status. Unknown values pass through.
func StatusLabel(s model.Status) string {
	switch s {
	case model.StatusOpen:
		return "Open"
	case model.StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// FormatDueDate renders the date portion of an ISO value as DD/MM/YYYY.
// The time portion is ignored. Empty input renders nothing.
func FormatDueDate(s string) string {
	if s == "" {
		return ""
	}
	date, _, _ := strings.Cut(s, "T")
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// RelativeTime renders a server timestamp relative to now, e.g. "3 minutes ago".
// Zone-less timestamps are read as local time. Unparseable input is returned unchanged.
func RelativeTime(created string, now time.Time) string {
	if created == "" {
		return ""
	}
	for _, layout := range createdLayouts {
		t, err := time.ParseInLocation(layout, created, now.Location())
		if err == nil {
			return humanize.RelTime(t, now, "ago", "from now")
		}
	}
	return created
}
