// Package platform classifies raw hand history text by originating site.
package platform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies a supported poker site
type Platform string

const (
	PokerStars Platform = "pokerstars"
	GGPoker    Platform = "ggpoker"
	PartyPoker Platform = "partypoker"
)

// Supported lists the platforms with a registered parser, in detection order
var Supported = []Platform{PokerStars, GGPoker, PartyPoker}

// ErrUnsupportedPlatform is returned when no signature or heuristic matches
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// IsSupported reports whether p names a known platform
func IsSupported(p Platform) bool {
	for _, s := range Supported {
		if s == p {
			return true
		}
	}
	return false
}

// signature is an ordered detection rule. Order matters: signatures must be
// mutually exclusive on well-formed input, and the first match wins.
type signature struct {
	platform Platform
	pattern  *regexp.Regexp
}

var signatures = []signature{
	{PokerStars, regexp.MustCompile(`(?i)PokerStars\s+(Hand|Game|Zoom Hand)\s+#`)},
	{GGPoker, regexp.MustCompile(`(?i)Poker Hand #(TM|RC|SD|HD)?\d+`)},
	{PartyPoker, regexp.MustCompile(`(?i)\*{5}\s*Hand History [Ff]or Game\s+\d+`)},
}

// Generic markers that indicate poker hand history content of some kind,
// used only by the heuristic fallback.
var pokerMarkers = []string{"hold'em", "holdem", "omaha", "small blind", "big blind", "*** FLOP ***", "Seat 1:"}

// Timezone tokens that are strongly associated with a particular platform's
// export format.
var timezoneHints = map[Platform][]string{
	PokerStars: {" ET", " AEST", " WET"},
	GGPoker:    {" UTC"},
	PartyPoker: {" CET", " GMT"},
}

// Detect classifies raw text as belonging to a supported platform. It tries
// the ordered signature patterns first, then falls back to content
// heuristics. Empty input fails immediately.
func Detect(text string) (Platform, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty input: %w", ErrUnsupportedPlatform)
	}

	for _, sig := range signatures {
		if sig.pattern.MatchString(text) {
			return sig.platform, nil
		}
	}

	if p, ok := detectByHeuristics(text); ok {
		return p, nil
	}
	return "", ErrUnsupportedPlatform
}

// detectByHeuristics looks for generic poker markers combined with a
// platform-specific timezone token. It only fires when the text looks like
// poker at all, so arbitrary prose never matches on a stray "ET".
func detectByHeuristics(text string) (Platform, bool) {
	lower := strings.ToLower(text)
	looksLikePoker := false
	for _, marker := range pokerMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			looksLikePoker = true
			break
		}
	}
	if !looksLikePoker {
		return "", false
	}

	for _, p := range Supported {
		for _, hint := range timezoneHints[p] {
			if strings.Contains(text, hint) {
				return p, true
			}
		}
	}
	return "", false
}
