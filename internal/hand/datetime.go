package hand

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Platforms disagree on date formatting. PokerStars prints
// "2024/01/15 20:00:00 ET", GGPoker "2024-01-15 20:00:00" and PartyPoker
// "Monday, January 15, 20:00:00 CET 2024". Timezone tokens are platform
// abbreviations, not IANA names, so they are captured as-is.
var dateLayouts = []string{
	"2006/01/02 15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 3:04:05",
	"02 01 2006 15:04:05",
	"Monday, January 2, 15:04:05 2006",
}

var tzToken = regexp.MustCompile(`\b(ET|CET|UTC|GMT|AEST|WET|BST|PT|MT|CT|MSK)\b`)

// ParseDateTime parses a platform-formatted date string, returning the
// parsed time and any timezone abbreviation found in the text. The time
// itself is parsed without zone conversion since platform abbreviations
// are ambiguous.
func ParseDateTime(s string) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, "", fmt.Errorf("empty datetime")
	}

	timezone := ""
	if m := tzToken.FindString(s); m != "" {
		timezone = m
		s = strings.TrimSpace(tzToken.ReplaceAllString(s, ""))
		// Collapse the double space left behind mid-string
		s = strings.Join(strings.Fields(s), " ")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, timezone, nil
		}
	}
	return time.Time{}, timezone, fmt.Errorf("unrecognized datetime format: %q", s)
}
