package ui

import (
	"fmt"
	"strings"
)

// maxErrorLength truncates script errors shown in the status line.
const maxErrorLength = 80

// statusLine summarises the scroll state and the latest script error.
func statusLine(title string, scrollX, scrollY, width, height float64, scriptErr string) string {
	line := fmt.Sprintf("%s  scroll %.0f, %.0f of %.0f x %.0f", title, scrollX, scrollY, width, height)
	if scriptErr == "" {
		return line
	}
	scriptErr = strings.Join(strings.Fields(scriptErr), " ")
	if len(scriptErr) > maxErrorLength {
		scriptErr = scriptErr[:maxErrorLength-3] + "..."
	}
	return line + "  script error: " + scriptErr
}
