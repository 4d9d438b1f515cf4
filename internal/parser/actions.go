package parser

import (
	"regexp"
	"strings"

	"github.com/lox/handhistory/internal/hand"
)

// PokerStars-style street markers. GGPoker exports use the same vocabulary
// so both parsers share this dialect.
var starsStreetMarkers = []struct {
	street hand.Street
	token  string
}{
	{hand.Preflop, "*** HOLE CARDS ***"},
	{hand.Flop, "*** FLOP ***"},
	{hand.Turn, "*** TURN ***"},
	{hand.River, "*** RIVER ***"},
}

var starsEndMarkers = []string{"*** SHOW DOWN ***", "*** SHOWDOWN ***", "*** SUMMARY ***"}

// segmentStarsStreets slices the block into per-street action regions.
// Streets absent from the text are absent from the result.
func segmentStarsStreets(text string) map[hand.Street]string {
	end := len(text)
	for _, token := range starsEndMarkers {
		if idx := strings.Index(text, token); idx >= 0 && idx < end {
			end = idx
		}
	}

	type region struct {
		street     hand.Street
		tokenStart int
		start      int
	}
	var regions []region
	for _, m := range starsStreetMarkers {
		idx := strings.Index(text, m.token)
		if idx < 0 || idx >= end {
			continue
		}
		regions = append(regions, region{m.street, idx, idx + len(m.token)})
	}
	if len(regions) == 0 {
		return nil
	}

	segments := make(map[hand.Street]string, len(regions))
	for i, r := range regions {
		segEnd := end
		if i+1 < len(regions) {
			segEnd = regions[i+1].tokenStart
		}
		if segEnd < r.start {
			segEnd = r.start
		}
		segments[r.street] = text[r.start:segEnd]
	}
	return segments
}

var (
	starsFold  = regexp.MustCompile(`^(.+?): folds`)
	starsCheck = regexp.MustCompile(`^(.+?): checks`)
	starsCall  = regexp.MustCompile(`^(.+?): calls [$€£¥]?([\d.,]+)`)
	starsBet   = regexp.MustCompile(`^(.+?): bets [$€£¥]?([\d.,]+)`)
	starsRaise = regexp.MustCompile(`^(.+?): raises [$€£¥]?[\d.,]+ to [$€£¥]?([\d.,]+)`)
)

// stackTracker maintains per-player stacks and per-street contributions so
// each recorded action carries the stack behind it after acting.
type stackTracker struct {
	stacks      map[string]float64
	contributed map[string]float64
}

func newStackTracker(seats []hand.PlayerStack) *stackTracker {
	t := &stackTracker{
		stacks:      make(map[string]float64, len(seats)),
		contributed: make(map[string]float64, len(seats)),
	}
	for _, s := range seats {
		t.stacks[s.Name] = s.Stack
	}
	return t
}

// nextStreet resets the per-street contribution state
func (t *stackTracker) nextStreet() {
	t.contributed = make(map[string]float64, len(t.stacks))
}

// charge deducts delta chips from player's stack, flooring at zero
func (t *stackTracker) charge(player string, delta float64) float64 {
	t.stacks[player] -= delta
	if t.stacks[player] < 0 {
		t.stacks[player] = 0
	}
	return t.stacks[player]
}

// chargeTo deducts up to a street-cumulative total, as printed by raise
// lines ("raises $0.10 to $0.15" charges the difference from what the
// player already has in front of them this street).
func (t *stackTracker) chargeTo(player string, total float64) float64 {
	delta := total - t.contributed[player]
	if delta < 0 {
		delta = 0
	}
	t.contributed[player] = total
	return t.charge(player, delta)
}

// scanStarsActions walks a street's text region line by line, anchored on
// the known player names, and appends ordered actions to the hand.
func scanStarsActions(h *hand.Hand, street hand.Street, segment string, known map[string]bool, tracker *stackTracker) {
	tracker.nextStreet()
	for _, line := range strings.Split(segment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		action, ok := parseStarsActionLine(line, known, tracker)
		if !ok {
			continue
		}
		if h.Actions == nil {
			h.Actions = make(map[hand.Street][]hand.Action)
		}
		h.Actions[street] = append(h.Actions[street], action)
	}
}

func parseStarsActionLine(line string, known map[string]bool, tracker *stackTracker) (hand.Action, bool) {
	allIn := strings.Contains(line, "and is all-in")

	build := func(player string, kind hand.ActionKind, amount float64, stackAfter float64) (hand.Action, bool) {
		if len(known) > 0 && !known[player] {
			return hand.Action{}, false
		}
		if allIn {
			kind = hand.ActionAllIn
		}
		return hand.Action{
			Player:     player,
			Kind:       kind,
			Amount:     amount,
			IsAllIn:    allIn,
			StackAfter: stackAfter,
		}, true
	}

	if m := starsRaise.FindStringSubmatch(line); m != nil {
		total, err := hand.ParseDecimal(m[2])
		if err != nil {
			return hand.Action{}, false
		}
		return build(m[1], hand.ActionRaise, total, tracker.chargeTo(m[1], total))
	}
	if m := starsBet.FindStringSubmatch(line); m != nil {
		amount, err := hand.ParseDecimal(m[2])
		if err != nil {
			return hand.Action{}, false
		}
		return build(m[1], hand.ActionBet, amount, tracker.chargeTo(m[1], amount))
	}
	if m := starsCall.FindStringSubmatch(line); m != nil {
		amount, err := hand.ParseDecimal(m[2])
		if err != nil {
			return hand.Action{}, false
		}
		tracker.contributed[m[1]] += amount
		return build(m[1], hand.ActionCall, amount, tracker.charge(m[1], amount))
	}
	if m := starsCheck.FindStringSubmatch(line); m != nil {
		return build(m[1], hand.ActionCheck, 0, tracker.stacks[m[1]])
	}
	if m := starsFold.FindStringSubmatch(line); m != nil {
		return build(m[1], hand.ActionFold, 0, tracker.stacks[m[1]])
	}
	return hand.Action{}, false
}
