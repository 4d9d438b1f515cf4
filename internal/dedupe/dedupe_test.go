package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lox/handhistory/internal/hand"
)

func sampleHand(id string) *hand.Hand {
	return &hand.Hand{
		HandID:     id,
		Platform:   "pokerstars",
		GameType:   "Hold'em No Limit",
		Stakes:     "$0.02/$0.05",
		DatePlayed: time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		PotSize:    3.00,
		RawText:    "PokerStars Hand #" + id + ": Hold'em No Limit",
	}
}

func TestFirstOccurrenceIsNotDuplicate(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.IsDuplicate(sampleHand("1")))
	assert.True(t, tr.IsDuplicate(sampleHand("1")))
	assert.False(t, tr.IsDuplicate(sampleHand("2")))

	stats := tr.Stats()
	assert.Equal(t, 2, stats.UniqueHands)
	assert.Equal(t, 3, stats.Checked)
	assert.Equal(t, 1, stats.Duplicates)
}

func TestResetStartsNewSession(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.IsDuplicate(sampleHand("1")))
	assert.True(t, tr.IsDuplicate(sampleHand("1")))

	tr.Reset()
	assert.False(t, tr.IsDuplicate(sampleHand("1")))
	assert.Equal(t, 0, tr.Stats().Duplicates)
}

func TestFingerprintCatchesRelabeledReexports(t *testing.T) {
	tr := NewTracker()

	first := sampleHand("1")
	assert.False(t, tr.IsDuplicate(first))

	// Same content re-exported under a different identity key: the
	// fingerprint covers hand ID and raw text, so a genuinely different ID
	// is a different hand...
	relabeled := sampleHand("2")
	assert.False(t, tr.IsDuplicate(relabeled))

	// ...but byte-identical content with a matching ID always collides
	assert.True(t, tr.IsDuplicate(sampleHand("1")))
}

func TestFingerprintStability(t *testing.T) {
	a := Fingerprint(sampleHand("42"))
	b := Fingerprint(sampleHand("42"))
	assert.Equal(t, a, b)

	changed := sampleHand("42")
	changed.PotSize = 99
	assert.NotEqual(t, a, Fingerprint(changed))
}

func TestDifferentPlatformsDoNotCollide(t *testing.T) {
	tr := NewTracker()

	a := sampleHand("7")
	b := sampleHand("7")
	b.Platform = "ggpoker"
	b.RawText = "Poker Hand #7"

	assert.False(t, tr.IsDuplicate(a))
	assert.False(t, tr.IsDuplicate(b))
}
