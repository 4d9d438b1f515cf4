// Package dedupe detects duplicate hands within a single parsing session.
package dedupe

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/lox/handhistory/internal/hand"
)

// Tracker remembers which hands have been seen during one parsing session.
// It keeps two tiers: an exact identity key (platform:hand_id) and a content
// fingerprint that catches re-exported hands carrying a different identity.
//
// A Tracker is session-scoped mutable state. It is not safe for concurrent
// use; callers sharing one tracker across workers must serialize access.
type Tracker struct {
	seenIDs          map[string]bool
	seenFingerprints map[uint64]bool

	checked    int
	duplicates int
}

// NewTracker creates an empty session tracker
func NewTracker() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// Reset clears all session state, starting a new independent import session
func (t *Tracker) Reset() {
	t.seenIDs = make(map[string]bool)
	t.seenFingerprints = make(map[uint64]bool)
	t.checked = 0
	t.duplicates = 0
}

// IsDuplicate reports whether h has been seen before in this session. The
// first occurrence is recorded and reported as new; identical subsequent
// occurrences are duplicates.
func (t *Tracker) IsDuplicate(h *hand.Hand) bool {
	t.checked++

	key := identityKey(h)
	fp := Fingerprint(h)

	if t.seenIDs[key] || t.seenFingerprints[fp] {
		t.duplicates++
		return true
	}

	t.seenIDs[key] = true
	t.seenFingerprints[fp] = true
	return false
}

// Stats reports session counters for observability
func (t *Tracker) Stats() Stats {
	return Stats{
		UniqueHands: len(t.seenIDs),
		Checked:     t.checked,
		Duplicates:  t.duplicates,
	}
}

// Stats summarizes one session's duplicate tracking
type Stats struct {
	UniqueHands int
	Checked     int
	Duplicates  int
}

func identityKey(h *hand.Hand) string {
	return h.Platform + ":" + h.HandID
}

// Fingerprint computes an order-stable content hash over the fields that
// survive a re-export: identity, date, game context, cards, pot size and
// the head of the raw text.
func Fingerprint(h *hand.Hand) uint64 {
	hasher := fnv.New64a()

	write := func(parts ...string) {
		for _, part := range parts {
			hasher.Write([]byte(part))
			hasher.Write([]byte{0})
		}
	}

	write(h.Platform, h.HandID)
	if !h.DatePlayed.IsZero() {
		write(h.DatePlayed.UTC().Format(time.RFC3339))
	}
	write(h.GameType, h.Stakes)

	var cards []string
	for _, c := range h.PlayerCards {
		cards = append(cards, c.String())
	}
	for _, c := range h.BoardCards {
		cards = append(cards, c.String())
	}
	write(strings.Join(cards, ","))

	write(fmt.Sprintf("%.2f", h.PotSize))

	head := h.RawText
	if len(head) > 100 {
		head = head[:100]
	}
	write(head)

	return hasher.Sum64()
}
