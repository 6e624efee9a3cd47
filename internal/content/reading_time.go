package content

import (
	"fmt"
	"strings"
)

// WordsPerMinute is the reading speed used for reading time estimates
const WordsPerMinute = 200

// ReadingMinutes estimates whole minutes needed to read body, never less than one
func ReadingMinutes(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(minutes, 1)
}

// ReadingTime renders the estimate for display, e.g. "5 min read"
func ReadingTime(body string) string {
	return fmt.Sprintf("%d min read", ReadingMinutes(body))
}
