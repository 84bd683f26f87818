package notifications_services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsMentioned reports whether content contains an @-mention of the given
// display name. Matching is case insensitive and the mention must end at a
// word boundary, so "@Ann" does not match inside "@Annette".
func IsMentioned(content, displayName string) bool {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return false
	}

	lowerContent := strings.ToLower(content)
	needle := "@" + strings.ToLower(name)

	searchFrom := 0
	for {
		pos := strings.Index(lowerContent[searchFrom:], needle)
		if pos < 0 {
			return false
		}

		end := searchFrom + pos + len(needle)
		if end >= len(lowerContent) {
			return true
		}

		next, _ := utf8.DecodeRuneInString(lowerContent[end:])
		if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
			return true
		}

		searchFrom = end
	}
}
