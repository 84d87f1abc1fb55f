package blog

import "strings"

const wordsPerMinute = 200

// ReadingTime estimates minutes to read content, never less than one minute.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
