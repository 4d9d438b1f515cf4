// Package phh exports parsed hands in the PHH (poker hand history) TOML
// format for downstream tooling.
package phh

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/handhistory/internal/hand"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hh *HandHistory) error {
	if hh == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hh)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hh *HandHistory) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, hh); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// centsScale converts currency amounts to integer cents, the unit PHH
// stacks and bets are written in for cash games.
const centsScale = 100

// FromHand converts a parsed hand into its PHH representation. Chip
// amounts are scaled to cents for cash games and kept whole for
// tournaments.
func FromHand(h *hand.Hand) *HandHistory {
	scale := float64(centsScale)
	if h.GameFormat == hand.FormatTournament || h.GameFormat == hand.FormatSitAndGo {
		scale = 1
	}
	toInt := func(v float64) int {
		return int(math.Round(v * scale))
	}

	seats := make([]hand.PlayerStack, len(h.PlayerStacks))
	copy(seats, h.PlayerStacks)
	sort.Slice(seats, func(i, j int) bool { return seats[i].Seat < seats[j].Seat })

	hh := &HandHistory{
		Variant:  "NT",
		HandID:   h.HandID,
		MinBet:   toInt(h.Blinds.Big),
		Currency: h.Currency,
	}
	if h.CashGame != nil {
		hh.Table = h.CashGame.TableName
	}
	if h.TableSize > 0 {
		hh.SeatCount = h.TableSize
	}

	seatIndex := make(map[string]int, len(seats))
	for i, s := range seats {
		seatIndex[s.Name] = i
		hh.Seats = append(hh.Seats, s.Seat)
		hh.Players = append(hh.Players, s.Name)
		hh.StartingStacks = append(hh.StartingStacks, toInt(s.Stack))
		hh.Antes = append(hh.Antes, toInt(h.Blinds.Ante))
	}

	hh.BlindsOrStraddles = blindEntries(h, seats, toInt)
	hh.Actions = actionEntries(h, seatIndex, toInt)

	if !h.DatePlayed.IsZero() {
		hh.Time = h.DatePlayed.Format("15:04:05")
		hh.Year = h.DatePlayed.Year()
		hh.Month = int(h.DatePlayed.Month())
		hh.Day = h.DatePlayed.Day()
	}
	if h.Timezone != "" {
		hh.TimeZoneAbbrev = h.Timezone
	}

	return hh
}

// blindEntries lays the small and big blind out positionally after the
// button seat.
func blindEntries(h *hand.Hand, seats []hand.PlayerStack, toInt func(float64) int) []int {
	entries := make([]int, len(seats))
	if len(seats) < 2 {
		return entries
	}

	buttonIdx := 0
	for i, s := range seats {
		if s.Seat == h.ButtonPosition {
			buttonIdx = i
			break
		}
	}

	sb := (buttonIdx + 1) % len(seats)
	bb := (buttonIdx + 2) % len(seats)
	if len(seats) == 2 {
		sb = buttonIdx
		bb = (buttonIdx + 1) % len(seats)
	}
	entries[sb] = toInt(h.Blinds.Small)
	entries[bb] = toInt(h.Blinds.Big)
	return entries
}

// actionEntries converts the street-keyed action log into the flat PHH
// action vocabulary: "p1 f", "p2 cc", "p3 cbr 150", with board deals
// emitted as "d db" entries between streets.
func actionEntries(h *hand.Hand, seatIndex map[string]int, toInt func(float64) int) []string {
	var entries []string

	if len(h.PlayerCards) == 2 && h.SeatNumber > 0 {
		if idx, ok := heroIndex(h, seatIndex); ok {
			run := h.PlayerCards[0].String() + h.PlayerCards[1].String()
			entries = append(entries, fmt.Sprintf("d dh p%d %s", idx+1, run))
		}
	}

	boardOffsets := map[hand.Street][2]int{
		hand.Flop:  {0, 3},
		hand.Turn:  {3, 4},
		hand.River: {4, 5},
	}

	for _, street := range hand.Streets {
		if offsets, ok := boardOffsets[street]; ok && len(h.BoardCards) >= offsets[1] {
			var run strings.Builder
			for _, c := range h.BoardCards[offsets[0]:offsets[1]] {
				run.WriteString(c.String())
			}
			entries = append(entries, "d db "+run.String())
		}

		for _, a := range h.Actions[street] {
			idx, ok := seatIndex[a.Player]
			if !ok {
				continue
			}
			player := fmt.Sprintf("p%d", idx+1)
			switch a.Kind {
			case hand.ActionFold:
				entries = append(entries, player+" f")
			case hand.ActionCheck, hand.ActionCall:
				entries = append(entries, player+" cc")
			case hand.ActionBet, hand.ActionRaise, hand.ActionAllIn:
				entries = append(entries, fmt.Sprintf("%s cbr %d", player, toInt(a.Amount)))
			}
		}
	}

	return entries
}

func heroIndex(h *hand.Hand, seatIndex map[string]int) (int, bool) {
	for _, s := range h.PlayerStacks {
		if s.Seat == h.SeatNumber {
			idx, ok := seatIndex[s.Name]
			return idx, ok
		}
	}
	return 0, false
}
