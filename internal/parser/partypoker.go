package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/handhistory/internal/deck"
	"github.com/lox/handhistory/internal/hand"
	"github.com/lox/handhistory/internal/platform"
)

// PartyPokerParser parses PartyPoker hand history exports. The dialect is
// distinct from the PokerStars family: star-star street markers with
// comma-separated board cards, bracketed bet amounts and a per-winner
// "wins" line instead of a pot summary.
type PartyPokerParser struct {
	opts Options
}

// NewPartyPoker creates a PartyPoker parser
func NewPartyPoker(opts Options) *PartyPokerParser {
	return &PartyPokerParser{opts: opts}
}

var (
	ppHeader       = regexp.MustCompile(`(?i)\*{5}\s*Hand History [Ff]or Game (\d+)`)
	ppGameLine     = regexp.MustCompile(`(?m)^([$€£¥]?[\d.,]+)/([$€£¥]?[\d.,]+)\s+(?:([A-Z]{3})\s+)?(.+?)\s+-\s+(.+)$`)
	ppTable        = regexp.MustCompile(`(?m)^Table (.+?)(?: \(Real Money\))?\s*$`)
	ppButton       = regexp.MustCompile(`Seat (\d+) is the button`)
	ppTotalPlayers = regexp.MustCompile(`Total Number of Players\s*:\s*(\d+)`)
	ppSeat         = regexp.MustCompile(`(?m)^Seat (\d+): (.+?) \(\s*([$€£¥]?[\d.,]+)(?: [A-Z]{3})?\s*\)`)
	ppSmallBlind   = regexp.MustCompile(`(.+?) posts small blind \[([$€£¥]?[\d.,]+)`)
	ppBigBlind     = regexp.MustCompile(`(.+?) posts big blind \[([$€£¥]?[\d.,]+)`)
	ppDealtTo      = regexp.MustCompile(`Dealt to (.+?) \[\s*([^\]]+?)\s*\]`)
	ppTournament   = regexp.MustCompile(`Tournament #?(\d+)`)
	ppWins         = regexp.MustCompile(`(.+?) wins ([$€£¥]?[\d.,]+)`)
	ppShows        = regexp.MustCompile(`(?m)^(.+?) shows \[`)
	ppRake         = regexp.MustCompile(`Rake:?\s*([$€£¥]?[\d.,]+)`)

	ppFold  = regexp.MustCompile(`^(.+?) folds`)
	ppCheck = regexp.MustCompile(`^(.+?) checks`)
	ppCall  = regexp.MustCompile(`^(.+?) calls \[([$€£¥]?[\d.,]+)`)
	ppBet   = regexp.MustCompile(`^(.+?) bets \[([$€£¥]?[\d.,]+)`)
	ppRaise = regexp.MustCompile(`^(.+?) raises \[([$€£¥]?[\d.,]+)`)
	ppAllIn = regexp.MustCompile(`^(.+?) is all-[Ii]n`)
)

// ppStreetMarkers in deal order; board cards follow the flop/turn/river
// markers in a comma-separated bracket.
var ppStreetMarkers = []struct {
	street hand.Street
	token  string
}{
	{hand.Preflop, "** Dealing down cards **"},
	{hand.Flop, "** Dealing Flop **"},
	{hand.Turn, "** Dealing Turn **"},
	{hand.River, "** Dealing River **"},
}

var ppBoardBracket = regexp.MustCompile(`^\s*\[\s*([^\]]+?)\s*\]`)

// Platform implements Parser
func (p *PartyPokerParser) Platform() platform.Platform { return platform.PartyPoker }

// CanParse implements Parser
func (p *PartyPokerParser) CanParse(text string) bool {
	return ppHeader.MatchString(text)
}

// ParseHands implements Parser
func (p *PartyPokerParser) ParseHands(text string) ([]*hand.Hand, []*ParseError, error) {
	if !p.CanParse(text) {
		return nil, nil, fmt.Errorf("text is not PartyPoker format")
	}

	blocks := splitBlocks(text, ppHeader)
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("no hand blocks found")
	}

	var hands []*hand.Hand
	var errs []*ParseError
	for i, block := range blocks {
		h, err := p.parseBlock(block)
		if err != nil {
			errs = append(errs, newParseError(platform.PartyPoker, i, block, err))
			continue
		}
		hands = append(hands, h)
	}
	return hands, errs, nil
}

func (p *PartyPokerParser) parseBlock(block string) (*hand.Hand, error) {
	handID, ok := firstGroup(ppHeader, block)
	if !ok {
		return nil, fmt.Errorf("no hand header found")
	}

	h := &hand.Hand{
		HandID:   handID,
		Platform: string(platform.PartyPoker),
		RawText:  block,
		Currency: "USD",
	}

	p.extractGameContext(h, block)
	p.extractTable(h, block)
	p.extractSeats(h, block)
	if len(h.PlayerStacks) == 0 {
		return nil, fmt.Errorf("hand #%s has no seat lines", handID)
	}
	p.extractBlinds(h, block)
	p.extractHeroCards(h, block)
	p.extractBoardAndActions(h, block)
	p.extractResult(h, block)
	p.computePosition(h)

	return h, nil
}

func (p *PartyPokerParser) extractGameContext(h *hand.Hand, block string) {
	if m := ppGameLine.FindStringSubmatch(block); m != nil {
		small, currency, err1 := hand.ParseAmount(m[1])
		big, _, err2 := hand.ParseAmount(m[2])
		if err1 == nil && err2 == nil {
			h.Blinds.Small = small
			h.Blinds.Big = big
			h.Stakes = m[1] + "/" + m[2]
			h.Currency = currency
		}
		if m[3] != "" {
			h.Currency = m[3]
		}
		// The middle chunk reads like "Cash Game Texas Hold'em"; the
		// format prefix is stripped to leave the game type.
		gameType := m[4]
		for _, prefix := range []string{"Cash Game", "Tournament", "Sit and Go"} {
			gameType = strings.TrimSpace(strings.TrimPrefix(gameType, prefix))
		}
		h.GameType = gameType
		if t, tz, err := hand.ParseDateTime(m[5]); err == nil {
			h.DatePlayed = t
			h.Timezone = tz
		}
	}

	if !strings.Contains(block, "(Real Money)") && !strings.ContainsAny(block, "$€£¥") {
		h.IsPlayMoney = true
	}

	if m := ppTournament.FindStringSubmatch(block); m != nil {
		h.GameFormat = hand.FormatTournament
		h.Tournament = &hand.TournamentInfo{TournamentID: m[1]}
	} else {
		h.GameFormat = hand.FormatCash
	}
}

func (p *PartyPokerParser) extractTable(h *hand.Hand, block string) {
	if m := ppButton.FindStringSubmatch(block); m != nil {
		h.ButtonPosition, _ = strconv.Atoi(m[1])
	}
	if m := ppTotalPlayers.FindStringSubmatch(block); m != nil {
		h.TableSize, _ = strconv.Atoi(m[1])
	}
	if h.GameFormat == hand.FormatCash {
		name := ""
		if m := ppTable.FindStringSubmatch(block); m != nil {
			name = strings.TrimSpace(m[1])
		}
		h.CashGame = &hand.CashGameInfo{
			TableName:  name,
			MaxPlayers: h.TableSize,
		}
	}
}

func (p *PartyPokerParser) extractSeats(h *hand.Hand, block string) {
	for _, m := range ppSeat.FindAllStringSubmatch(block, -1) {
		seat, _ := strconv.Atoi(m[1])
		stack, _, err := hand.ParseAmount(m[3])
		if err != nil {
			continue
		}
		h.PlayerStacks = append(h.PlayerStacks, hand.PlayerStack{
			Seat:  seat,
			Name:  m[2],
			Stack: stack,
		})
		if p.opts.FocalUsername != "" && m[2] == p.opts.FocalUsername {
			h.SeatNumber = seat
		}
	}
	if h.TableSize == 0 && len(h.PlayerStacks) > 0 {
		h.TableSize = len(h.PlayerStacks)
		if h.CashGame != nil && h.CashGame.MaxPlayers == 0 {
			h.CashGame.MaxPlayers = h.TableSize
		}
	}
}

func (p *PartyPokerParser) extractBlinds(h *hand.Hand, block string) {
	if m := ppSmallBlind.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(strings.TrimLeft(m[2], "$€£¥")); err == nil && h.Blinds.Small == 0 {
			h.Blinds.Small = v
		}
	}
	if m := ppBigBlind.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(strings.TrimLeft(m[2], "$€£¥")); err == nil && h.Blinds.Big == 0 {
			h.Blinds.Big = v
		}
	}
}

func (p *PartyPokerParser) extractHeroCards(h *hand.Hand, block string) {
	if p.opts.FocalUsername == "" {
		return
	}
	for _, m := range ppDealtTo.FindAllStringSubmatch(block, -1) {
		if m[1] != p.opts.FocalUsername {
			continue
		}
		cards, err := deck.ParseCards(strings.ReplaceAll(m[2], ",", " "))
		if err == nil && len(cards) == 2 {
			h.PlayerCards = cards
		}
		return
	}
}

// extractBoardAndActions walks the street markers in order, narrowing the
// remaining text suffix at each step. Party prints board runs directly
// after the marker, comma separated.
func (p *PartyPokerParser) extractBoardAndActions(h *hand.Hand, block string) {
	type segment struct {
		street hand.Street
		text   string
	}

	remaining := block
	var segments []segment
	for _, m := range ppStreetMarkers {
		idx := strings.Index(remaining, m.token)
		if idx < 0 {
			continue
		}
		if len(segments) > 0 {
			segments[len(segments)-1].text = remaining[:idx]
		}
		remaining = remaining[idx+len(m.token):]

		if m.street != hand.Preflop {
			if bm := ppBoardBracket.FindStringSubmatch(remaining); bm != nil {
				cards, err := deck.ParseCards(strings.NewReplacer(",", " ").Replace(bm[1]))
				if err == nil {
					h.BoardCards = append(h.BoardCards, cards...)
				}
			}
		}
		segments = append(segments, segment{street: m.street})
	}
	if len(segments) > 0 {
		segments[len(segments)-1].text = remaining
	}

	known := make(map[string]bool, len(h.PlayerStacks))
	for _, s := range h.PlayerStacks {
		known[s.Name] = true
	}
	tracker := newStackTracker(h.PlayerStacks)

	for _, seg := range segments {
		tracker.nextStreet()
		for _, line := range strings.Split(seg.text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			action, ok := p.parseActionLine(line, known, tracker)
			if !ok {
				continue
			}
			if h.Actions == nil {
				h.Actions = make(map[hand.Street][]hand.Action)
			}
			h.Actions[seg.street] = append(h.Actions[seg.street], action)
		}
	}
}

func (p *PartyPokerParser) parseActionLine(line string, known map[string]bool, tracker *stackTracker) (hand.Action, bool) {
	build := func(player string, kind hand.ActionKind, amount float64, allIn bool, stackAfter float64) (hand.Action, bool) {
		if len(known) > 0 && !known[player] {
			return hand.Action{}, false
		}
		return hand.Action{
			Player:     player,
			Kind:       kind,
			Amount:     amount,
			IsAllIn:    allIn,
			StackAfter: stackAfter,
		}, true
	}

	if m := ppAllIn.FindStringSubmatch(line); m != nil {
		player := m[1]
		stack := tracker.stacks[player]
		tracker.contributed[player] += stack
		return build(player, hand.ActionAllIn, stack, true, tracker.charge(player, stack))
	}
	if m := ppRaise.FindStringSubmatch(line); m != nil {
		amount, err := hand.ParseDecimal(strings.TrimLeft(m[2], "$€£¥"))
		if err != nil {
			return hand.Action{}, false
		}
		tracker.contributed[m[1]] += amount
		return build(m[1], hand.ActionRaise, amount, false, tracker.charge(m[1], amount))
	}
	if m := ppBet.FindStringSubmatch(line); m != nil {
		amount, err := hand.ParseDecimal(strings.TrimLeft(m[2], "$€£¥"))
		if err != nil {
			return hand.Action{}, false
		}
		tracker.contributed[m[1]] += amount
		return build(m[1], hand.ActionBet, amount, false, tracker.charge(m[1], amount))
	}
	if m := ppCall.FindStringSubmatch(line); m != nil {
		amount, err := hand.ParseDecimal(strings.TrimLeft(m[2], "$€£¥"))
		if err != nil {
			return hand.Action{}, false
		}
		tracker.contributed[m[1]] += amount
		return build(m[1], hand.ActionCall, amount, false, tracker.charge(m[1], amount))
	}
	if m := ppCheck.FindStringSubmatch(line); m != nil {
		return build(m[1], hand.ActionCheck, 0, false, tracker.stacks[m[1]])
	}
	if m := ppFold.FindStringSubmatch(line); m != nil {
		return build(m[1], hand.ActionFold, 0, false, tracker.stacks[m[1]])
	}
	return hand.Action{}, false
}

func (p *PartyPokerParser) extractResult(h *hand.Hand, block string) {
	// Party has no pot summary line; the pot is the sum of the winners'
	// collections plus rake when printed.
	var pot float64
	collectors := map[string]bool{}
	var heroWon float64
	for _, m := range ppWins.FindAllStringSubmatch(block, -1) {
		amount, _, err := hand.ParseAmount(m[2])
		if err != nil {
			continue
		}
		pot += amount
		collectors[m[1]] = true
		if p.opts.FocalUsername != "" && m[1] == p.opts.FocalUsername {
			heroWon += amount
		}
	}
	if m := ppRake.FindStringSubmatch(block); m != nil {
		if v, _, err := hand.ParseAmount(m[1]); err == nil {
			h.Rake = v
			pot += v
		}
	}
	h.PotSize = pot

	if p.opts.FocalUsername == "" {
		return
	}
	hero := p.opts.FocalUsername

	heroShowed := false
	for _, m := range ppShows.FindAllStringSubmatch(block, -1) {
		if m[1] == hero {
			heroShowed = true
		}
	}

	heroFolded := false
	for _, actions := range h.Actions {
		for _, a := range actions {
			if a.Player == hero && a.Kind == hand.ActionFold {
				heroFolded = true
			}
		}
	}

	result := &hand.Result{ReachedShowdown: heroShowed}
	switch {
	case heroWon > 0 && len(collectors) > 1:
		result.Kind = hand.ResultSplit
		result.AmountWon = heroWon
	case heroWon > 0:
		result.Kind = hand.ResultWon
		result.AmountWon = heroWon
	case heroFolded:
		result.Kind = hand.ResultFolded
	default:
		result.Kind = hand.ResultLost
	}
	h.Result = result
}

func (p *PartyPokerParser) computePosition(h *hand.Hand) {
	if h.SeatNumber == 0 || h.ButtonPosition == 0 || h.TableSize == 0 {
		return
	}
	h.Position = PositionLabel(h.SeatNumber, h.ButtonPosition, h.TableSize)
}
