// Package validate applies field, cross-field and semantic checks to parsed
// hands. All checks run independently so a single pass surfaces the full
// defect list; errors are accumulated messages, never panics.
package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/handhistory/internal/deck"
	"github.com/lox/handhistory/internal/hand"
	"github.com/lox/handhistory/internal/platform"
)

// maxHandAge bounds how old a hand may be under strict validation
const maxHandAge = 10 * 365 * 24 * time.Hour

// Validator checks parsed hands. The zero value is not usable; construct
// with New.
type Validator struct {
	clock quartz.Clock
}

// New creates a Validator using the real clock
func New() *Validator {
	return NewWithClock(quartz.NewReal())
}

// NewWithClock creates a Validator with an injected clock, for tests that
// need to pin "now" for the strict date-window checks.
func NewWithClock(clock quartz.Clock) *Validator {
	return &Validator{clock: clock}
}

// Validate runs every check against h and returns whether the hand is valid
// along with all accumulated error messages. Strict mode adds opt-in checks
// on top of the normal set, so the strict error list is always a superset of
// the non-strict one.
func (v *Validator) Validate(h *hand.Hand, strict bool) (bool, []string) {
	var errs []string

	errs = append(errs, v.checkBasic(h)...)
	errs = append(errs, v.checkCards(h)...)
	errs = append(errs, v.checkFinancial(h)...)
	errs = append(errs, v.checkActions(h)...)
	errs = append(errs, v.checkPositions(h)...)
	errs = append(errs, v.checkFormatPayload(h)...)
	if strict {
		errs = append(errs, v.checkStrict(h)...)
	}

	return len(errs) == 0, errs
}

func (v *Validator) checkBasic(h *hand.Hand) []string {
	var errs []string

	if h.HandID == "" {
		errs = append(errs, "hand ID is empty")
	} else if !isNumeric(h.HandID) {
		errs = append(errs, fmt.Sprintf("hand ID %q is not numeric", h.HandID))
	}

	if !platform.IsSupported(platform.Platform(h.Platform)) {
		errs = append(errs, fmt.Sprintf("platform %q is not supported", h.Platform))
	}

	if h.GameFormat != "" {
		switch h.GameFormat {
		case hand.FormatCash, hand.FormatTournament, hand.FormatSitAndGo:
		default:
			errs = append(errs, fmt.Sprintf("unknown game format %q", h.GameFormat))
		}
	}

	return errs
}

func (v *Validator) checkCards(h *hand.Hand) []string {
	var errs []string

	for _, c := range h.AllCards() {
		if !deck.IsValidCard(c.String()) {
			errs = append(errs, fmt.Sprintf("invalid card %q", c.String()))
		}
	}

	if n := len(h.PlayerCards); n != 0 && n != 2 {
		errs = append(errs, fmt.Sprintf("expected 0 or 2 hole cards, got %d", n))
	}

	switch len(h.BoardCards) {
	case 0, 3, 4, 5:
	default:
		errs = append(errs, fmt.Sprintf("board has %d cards, expected 0, 3, 4 or 5", len(h.BoardCards)))
	}

	seen := make(map[deck.Card]bool)
	for _, c := range h.AllCards() {
		if seen[c] {
			errs = append(errs, fmt.Sprintf("duplicate card %q across hole and board cards", c.String()))
		}
		seen[c] = true
	}

	return errs
}

func (v *Validator) checkFinancial(h *hand.Hand) []string {
	var errs []string

	if h.PotSize < 0 {
		errs = append(errs, fmt.Sprintf("pot size %.2f is negative", h.PotSize))
	}
	if h.Result != nil && h.Result.Kind == hand.ResultWon && h.PotSize <= 0 {
		errs = append(errs, "result is won but pot size is not positive")
	}
	if h.Rake < 0 {
		errs = append(errs, fmt.Sprintf("rake %.2f is negative", h.Rake))
	}
	if h.Rake > h.PotSize {
		errs = append(errs, fmt.Sprintf("rake %.2f exceeds pot size %.2f", h.Rake, h.PotSize))
	}
	if h.JackpotContribution < 0 {
		errs = append(errs, fmt.Sprintf("jackpot contribution %.2f is negative", h.JackpotContribution))
	}
	if h.Blinds.Small < 0 {
		errs = append(errs, fmt.Sprintf("small blind %.2f is negative", h.Blinds.Small))
	}
	if h.Blinds.Big < 0 {
		errs = append(errs, fmt.Sprintf("big blind %.2f is negative", h.Blinds.Big))
	}
	if h.Blinds.Small > 0 && h.Blinds.Big > 0 && h.Blinds.Small >= h.Blinds.Big {
		errs = append(errs, fmt.Sprintf("small blind %.2f is not less than big blind %.2f", h.Blinds.Small, h.Blinds.Big))
	}

	return errs
}

func (v *Validator) checkActions(h *hand.Hand) []string {
	var errs []string

	// Known streets first, in play order, so the message order is stable
	for street := range h.Actions {
		switch street {
		case hand.Preflop, hand.Flop, hand.Turn, hand.River:
		default:
			errs = append(errs, fmt.Sprintf("unknown street %q", street))
		}
	}

	for _, street := range hand.Streets {
		actions, ok := h.Actions[street]
		if !ok {
			continue
		}

		folded := make(map[string]bool)
		for i, a := range actions {
			switch a.Kind {
			case hand.ActionFold, hand.ActionCheck:
				if a.Amount != 0 {
					errs = append(errs, fmt.Sprintf("%s action %d on %s carries amount %.2f", a.Kind, i, street, a.Amount))
				}
			case hand.ActionBet, hand.ActionRaise, hand.ActionCall:
				if a.Amount <= 0 {
					errs = append(errs, fmt.Sprintf("%s action %d on %s has no positive amount", a.Kind, i, street))
				}
			case hand.ActionAllIn:
				if a.Amount < 0 {
					errs = append(errs, fmt.Sprintf("all-in action %d on %s has negative amount", i, street))
				}
			default:
				errs = append(errs, fmt.Sprintf("unknown action kind %q on %s", a.Kind, street))
			}

			// Fold is terminal within a street's ordered run, checked per
			// street rather than across the whole hand.
			if folded[a.Player] {
				errs = append(errs, fmt.Sprintf("player %s acts on %s after folding", a.Player, street))
			}
			if a.Kind == hand.ActionFold {
				folded[a.Player] = true
			}
		}
	}

	return errs
}

func (v *Validator) checkPositions(h *hand.Hand) []string {
	var errs []string

	if h.SeatNumber != 0 && (h.SeatNumber < 1 || h.SeatNumber > 10) {
		errs = append(errs, fmt.Sprintf("seat number %d out of range [1,10]", h.SeatNumber))
	}
	if h.ButtonPosition != 0 && (h.ButtonPosition < 1 || h.ButtonPosition > 10) {
		errs = append(errs, fmt.Sprintf("button position %d out of range [1,10]", h.ButtonPosition))
	}
	if h.TableSize > 0 {
		if h.SeatNumber > h.TableSize {
			errs = append(errs, fmt.Sprintf("seat number %d exceeds table size %d", h.SeatNumber, h.TableSize))
		}
		if h.ButtonPosition > h.TableSize {
			errs = append(errs, fmt.Sprintf("button position %d exceeds table size %d", h.ButtonPosition, h.TableSize))
		}
	}
	if h.Position != "" && !isKnownPosition(h.Position) {
		errs = append(errs, fmt.Sprintf("unknown position label %q", h.Position))
	}

	return errs
}

var knownPositions = map[string]bool{
	"BTN": true, "SB": true, "BB": true, "UTG": true, "UTG+1": true,
	"MP": true, "MP+1": true, "LJ": true, "HJ": true, "CO": true,
}

func isKnownPosition(label string) bool {
	if knownPositions[label] {
		return true
	}
	// Generic fallback labels from unmapped button offsets
	if strings.HasPrefix(label, "SEAT") && isNumeric(strings.TrimPrefix(label, "SEAT")) {
		return true
	}
	return false
}

func (v *Validator) checkFormatPayload(h *hand.Hand) []string {
	var errs []string

	switch h.GameFormat {
	case hand.FormatTournament, hand.FormatSitAndGo:
		if h.Tournament == nil || h.Tournament.TournamentID == "" {
			errs = append(errs, "tournament hand has no tournament ID")
		}
	case hand.FormatCash:
		if h.CashGame == nil || h.CashGame.TableName == "" {
			errs = append(errs, "cash game hand has no table name")
		}
	}

	return errs
}

func (v *Validator) checkStrict(h *hand.Hand) []string {
	var errs []string

	if h.Result != nil && h.Result.Kind != hand.ResultFolded && len(h.PlayerCards) == 0 {
		errs = append(errs, "non-folded hand has no hole cards")
	}
	if h.Result != nil && h.Result.ReachedShowdown && len(h.BoardCards) < 3 {
		errs = append(errs, fmt.Sprintf("showdown hand has only %d board cards", len(h.BoardCards)))
	}

	if !h.DatePlayed.IsZero() {
		now := v.clock.Now()
		if h.DatePlayed.After(now) {
			errs = append(errs, fmt.Sprintf("date played %s is in the future", h.DatePlayed.Format(time.RFC3339)))
		}
		if h.DatePlayed.Before(now.Add(-maxHandAge)) {
			errs = append(errs, fmt.Sprintf("date played %s is older than 10 years", h.DatePlayed.Format(time.RFC3339)))
		}
	}

	return errs
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
