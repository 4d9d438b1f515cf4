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

// GGPokerParser parses GGPoker hand history exports. The action and street
// vocabulary matches PokerStars, so the dialect scanner is shared; headers,
// hand ID prefixes and the jackpot summary line are GG-specific.
type GGPokerParser struct {
	opts Options
}

// NewGGPoker creates a GGPoker parser
func NewGGPoker(opts Options) *GGPokerParser {
	return &GGPokerParser{opts: opts}
}

var (
	ggHeader     = regexp.MustCompile(`(?i)Poker Hand #((?:TM|RC|SD|HD)?\d+)`)
	ggGameType   = regexp.MustCompile(`#(?:TM|RC|SD|HD)?\d+:\s+(?:Tournament #\d+,[^,]*?, )?([A-Za-z'’ -]+?(?:Limit|Hi/Lo))`)
	ggStakes     = regexp.MustCompile(`\(([$€£¥]?[\d.,]+)/([$€£¥]?[\d.,]+)\)`)
	ggDate       = regexp.MustCompile(`-\s+(\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}:\d{2})`)
	ggTournament = regexp.MustCompile(`Tournament #(\d+), ([$€£¥]?[\d.,]+)(?:\+([$€£¥]?[\d.,]+))?`)
	ggLevel      = regexp.MustCompile(`Level(\d+)`)
	ggTable      = regexp.MustCompile(`Table '([^']+)' (\d+)-max Seat #(\d+) is the button`)
	ggSeat       = regexp.MustCompile(`(?m)^Seat (\d+): (.+?) \(([$€£¥]?[\d.,]+) in chips\)( is sitting out)?$`)
	ggDealtTo    = regexp.MustCompile(`Dealt to (.+?) \[([^\]]+)\]`)
	ggCollected  = regexp.MustCompile(`(.+?) collected [$€£¥]?([\d.,]+) from (?:the )?pot`)
	ggShows      = regexp.MustCompile(`(?m)^(.+?): shows \[`)
	ggTotalPot   = regexp.MustCompile(`Total pot [$€£¥]?([\d.,]+)`)
	ggRake       = regexp.MustCompile(`Rake [$€£¥]?([\d.,]+)`)
	ggJackpot    = regexp.MustCompile(`Jackpot [$€£¥]?([\d.,]+)`)
)

// Platform implements Parser
func (p *GGPokerParser) Platform() platform.Platform { return platform.GGPoker }

// CanParse implements Parser
func (p *GGPokerParser) CanParse(text string) bool {
	return ggHeader.MatchString(text) && !psHeader.MatchString(text)
}

// ParseHands implements Parser
func (p *GGPokerParser) ParseHands(text string) ([]*hand.Hand, []*ParseError, error) {
	if !p.CanParse(text) {
		return nil, nil, fmt.Errorf("text is not GGPoker format")
	}

	blocks := splitBlocks(text, ggHeader)
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("no hand blocks found")
	}

	var hands []*hand.Hand
	var errs []*ParseError
	for i, block := range blocks {
		h, err := p.parseBlock(block)
		if err != nil {
			errs = append(errs, newParseError(platform.GGPoker, i, block, err))
			continue
		}
		hands = append(hands, h)
	}
	return hands, errs, nil
}

func (p *GGPokerParser) parseBlock(block string) (*hand.Hand, error) {
	handID, ok := firstGroup(ggHeader, block)
	if !ok {
		return nil, fmt.Errorf("no hand header found")
	}

	h := &hand.Hand{
		// GG prefixes hand IDs with a game-type tag; the numeric tail is
		// the platform-assigned identity.
		HandID:   strings.TrimLeft(handID, "TMRCSDH"),
		Platform: string(platform.GGPoker),
		RawText:  block,
		Currency: "USD",
	}

	p.extractGameContext(h, block)
	p.extractTable(h, block)
	p.extractSeats(h, block)
	if len(h.PlayerStacks) == 0 {
		return nil, fmt.Errorf("hand #%s has no seat lines", h.HandID)
	}
	p.extractBlinds(h, block)
	p.extractHeroCards(h, block)
	p.extractBoard(h, block)
	p.extractActions(h, block)
	p.extractResult(h, block)
	p.extractSummary(h, block)
	p.computePosition(h)

	return h, nil
}

func (p *GGPokerParser) extractGameContext(h *hand.Hand, block string) {
	if gameType, ok := firstGroup(ggGameType, block); ok {
		h.GameType = strings.TrimSpace(gameType)
	}

	if m := ggStakes.FindStringSubmatch(block); m != nil {
		small, currency, err1 := hand.ParseAmount(m[1])
		big, _, err2 := hand.ParseAmount(m[2])
		if err1 == nil && err2 == nil {
			h.Blinds.Small = small
			h.Blinds.Big = big
			h.Stakes = m[1] + "/" + m[2]
			h.Currency = currency
		}
	}

	if m := ggDate.FindStringSubmatch(block); m != nil {
		if t, tz, err := hand.ParseDateTime(m[1]); err == nil {
			h.DatePlayed = t
			h.Timezone = tz
		}
	}

	if m := ggTournament.FindStringSubmatch(block); m != nil {
		h.GameFormat = hand.FormatTournament
		if strings.Contains(block, "Sit & Go") {
			h.GameFormat = hand.FormatSitAndGo
		}
		buyIn, _, _ := hand.ParseAmount(m[2])
		if m[3] != "" {
			fee, _, _ := hand.ParseAmount(m[3])
			buyIn += fee
		}
		h.Tournament = &hand.TournamentInfo{
			TournamentID: m[1],
			BuyIn:        buyIn,
		}
		if level, ok := firstGroup(ggLevel, block); ok {
			h.Tournament.Level = level
		}
	} else {
		h.GameFormat = hand.FormatCash
	}
}

func (p *GGPokerParser) extractTable(h *hand.Hand, block string) {
	m := ggTable.FindStringSubmatch(block)
	if m == nil {
		return
	}
	maxPlayers, _ := strconv.Atoi(m[2])
	button, _ := strconv.Atoi(m[3])
	h.TableSize = maxPlayers
	h.ButtonPosition = button
	if h.GameFormat == hand.FormatCash {
		h.CashGame = &hand.CashGameInfo{
			TableName:  m[1],
			MaxPlayers: maxPlayers,
		}
	}
}

func (p *GGPokerParser) extractSeats(h *hand.Hand, block string) {
	for _, m := range ggSeat.FindAllStringSubmatch(block, -1) {
		seat, _ := strconv.Atoi(m[1])
		stack, _, err := hand.ParseAmount(m[3])
		if err != nil {
			continue
		}
		h.PlayerStacks = append(h.PlayerStacks, hand.PlayerStack{
			Seat:       seat,
			Name:       m[2],
			Stack:      stack,
			SittingOut: m[4] != "",
		})
		if p.opts.FocalUsername != "" && m[2] == p.opts.FocalUsername {
			h.SeatNumber = seat
		}
	}
	if h.TableSize == 0 && len(h.PlayerStacks) > 0 {
		h.TableSize = len(h.PlayerStacks)
	}
}

func (p *GGPokerParser) extractBlinds(h *hand.Hand, block string) {
	if m := psSmallBlind.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[2]); err == nil && h.Blinds.Small == 0 {
			h.Blinds.Small = v
		}
	}
	if m := psBigBlind.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[2]); err == nil && h.Blinds.Big == 0 {
			h.Blinds.Big = v
		}
	}
	if m := psAnte.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[2]); err == nil {
			h.Blinds.Ante = v
		}
	}
}

func (p *GGPokerParser) extractHeroCards(h *hand.Hand, block string) {
	if p.opts.FocalUsername == "" {
		return
	}
	for _, m := range ggDealtTo.FindAllStringSubmatch(block, -1) {
		if m[1] != p.opts.FocalUsername {
			continue
		}
		cards, err := deck.ParseCards(m[2])
		if err == nil && len(cards) == 2 {
			h.PlayerCards = cards
		}
		return
	}
}

func (p *GGPokerParser) extractBoard(h *hand.Hand, block string) {
	remaining := block
	for _, re := range []*regexp.Regexp{psFlop, psTurn, psRiver} {
		loc := re.FindStringSubmatchIndex(remaining)
		if loc == nil {
			return
		}
		run := remaining[loc[2]:loc[3]]
		cards, err := deck.ParseCards(run)
		if err == nil {
			h.BoardCards = append(h.BoardCards, cards...)
		}
		remaining = remaining[loc[1]:]
	}
}

func (p *GGPokerParser) extractActions(h *hand.Hand, block string) {
	segments := segmentStarsStreets(block)
	if segments == nil {
		return
	}

	known := make(map[string]bool, len(h.PlayerStacks))
	for _, s := range h.PlayerStacks {
		known[s.Name] = true
	}
	tracker := newStackTracker(h.PlayerStacks)

	for _, street := range hand.Streets {
		segment, ok := segments[street]
		if !ok {
			continue
		}
		scanStarsActions(h, street, segment, known, tracker)
	}
}

func (p *GGPokerParser) extractResult(h *hand.Hand, block string) {
	if p.opts.FocalUsername == "" {
		return
	}
	hero := p.opts.FocalUsername

	showdown := strings.Contains(block, "*** SHOWDOWN ***") || strings.Contains(block, "*** SHOW DOWN ***")
	heroShowed := false
	for _, m := range ggShows.FindAllStringSubmatch(block, -1) {
		if m[1] == hero {
			heroShowed = true
		}
	}

	var heroWon float64
	collectors := map[string]bool{}
	for _, m := range ggCollected.FindAllStringSubmatch(block, -1) {
		collectors[m[1]] = true
		if m[1] == hero {
			if v, err := hand.ParseDecimal(m[2]); err == nil {
				heroWon += v
			}
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

	result := &hand.Result{ReachedShowdown: showdown && (heroShowed || heroWon > 0)}
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

func (p *GGPokerParser) extractSummary(h *hand.Hand, block string) {
	if m := ggTotalPot.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[1]); err == nil {
			h.PotSize = v
		}
	}
	if m := ggRake.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[1]); err == nil {
			h.Rake = v
		}
	}
	if m := ggJackpot.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[1]); err == nil {
			h.JackpotContribution = v
		}
	}
}

func (p *GGPokerParser) computePosition(h *hand.Hand) {
	if h.SeatNumber == 0 || h.ButtonPosition == 0 || h.TableSize == 0 {
		return
	}
	h.Position = PositionLabel(h.SeatNumber, h.ButtonPosition, h.TableSize)
}
