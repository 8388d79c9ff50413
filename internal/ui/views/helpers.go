package views

import (
	"strconv"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
