package main

import (
	"strings"
	"time"

	"github.com/dori/taskflow/internal/model"
)

// parseQuickAdd splits "Buy milk !low due:tomorrow" into a task input.
// Unrecognised markers stay part of the title.
func parseQuickAdd(text string, now time.Time) model.TaskInput {
	in := model.TaskInput{Priority: model.PriorityMedium}

	var titleParts []string
	for _, word := range strings.Fields(text) {
		switch {
		case strings.HasPrefix(word, "!"):
			switch strings.ToLower(strings.TrimPrefix(word, "!")) {
			case "low", "l":
				in.Priority = model.PriorityLow
			case "medium", "med", "m":
				in.Priority = model.PriorityMedium
			case "high", "hi", "h":
				in.Priority = model.PriorityHigh
			default:
				titleParts = append(titleParts, word)
			}

		case strings.HasPrefix(strings.ToLower(word), "due:"):
			dateStr := strings.TrimPrefix(strings.ToLower(word), "due:")
			if parsed, ok := parseNaturalDate(dateStr, now); ok {
				in.DueDate = parsed.Format("2006-01-02")
			} else {
				titleParts = append(titleParts, word)
			}

		default:
			titleParts = append(titleParts, word)
		}
	}

	in.Title = strings.Join(titleParts, " ")
	return in
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

func parseNaturalDate(s string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), true
	case "nextweek":
		return today.AddDate(0, 0, 7), true
	}
	if day, ok := weekdays[s]; ok {
		return nextWeekday(today, day), true
	}

	// Month names parse case-insensitively, so "due:jan15" works after lowercasing.
	formats := []string{
		"2006-01-02",
		"01/02/2006",
		"Jan2",
		"Jan2,2006",
	}
	for _, format := range formats {
		t, err := time.ParseInLocation(format, s, now.Location())
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		}
		return t, true
	}
	return time.Time{}, false
}

// nextWeekday is always in the future; asking for today's weekday gives next week.
func nextWeekday(today time.Time, day time.Weekday) time.Time {
	daysUntil := int(day - today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
