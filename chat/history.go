package chat

import (
	"slices"
	"unicode/utf8"

	"lawbot"
)

// maxHistoryChars bounds the formatted history sent with each request.
// The remote model has a finite context window and full transcripts grow
// unbounded, so recency wins over completeness.
const maxHistoryChars = 12000

// Role labels used in the formatted history lines.
const (
	labelUser = "User"
	labelBot  = "LawBot"
)

// BuildHistory formats a transcript for the model. It walks the messages
// newest to oldest, skipping system and error messages, and accumulates
// "<label>: <text>" lines until the next line would exceed the character
// budget, then restores chronological order.
func BuildHistory(msgs []lawbot.Message) []string {
	var history []string
	chars := 0
	for i := len(msgs) - 1; i >= 0; i-- {
		m := msgs[i]
		if m.Role == lawbot.RoleSystem || m.IsError {
			continue
		}
		label := labelBot
		if m.Role == lawbot.RoleUser {
			label = labelUser
		}
		line := label + ": " + m.Text
		n := utf8.RuneCountInString(line)
		if chars+n > maxHistoryChars {
			break
		}
		history = append(history, line)
		chars += n
	}
	slices.Reverse(history)
	return history
}
