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

// PokerStarsParser parses PokerStars hand history exports
type PokerStarsParser struct {
	opts Options
}

// NewPokerStars creates a PokerStars parser
func NewPokerStars(opts Options) *PokerStarsParser {
	return &PokerStarsParser{opts: opts}
}

var (
	psHeader     = regexp.MustCompile(`(?i)PokerStars\s+(?:Hand|Game|Zoom Hand)\s+#(\d+)`)
	psGameType   = regexp.MustCompile(`#\d+:\s+(?:Tournament #\d+, \S+ (?:[A-Z]{3} )?)?([A-Za-z'’ -]+?(?:Limit|Hi/Lo|Draw))`)
	psStakes     = regexp.MustCompile(`\(([$€£¥]?[\d.,]+)/([$€£¥]?[\d.,]+)(?:\s+([A-Z]{3}))?\)`)
	psDate       = regexp.MustCompile(`-\s+(\d{4}/\d{2}/\d{2} \d{1,2}:\d{2}:\d{2}(?:\s+[A-Z]{1,4})?)`)
	psTournament = regexp.MustCompile(`Tournament #(\d+), ([$€£¥]?[\d.,]+)\+([$€£¥]?[\d.,]+)`)
	psLevel      = regexp.MustCompile(`Level ([IVXLC]+|\d+)`)
	psTable      = regexp.MustCompile(`Table '([^']+)' (\d+)-max(?: \(Play Money\))? Seat #(\d+) is the button`)
	psSeat       = regexp.MustCompile(`(?m)^Seat (\d+): (.+?) \(([$€£¥]?[\d.,]+) in chips\)( is sitting out)?$`)
	psSmallBlind = regexp.MustCompile(`(.+?): posts small blind [$€£¥]?([\d.,]+)`)
	psBigBlind   = regexp.MustCompile(`(.+?): posts big blind [$€£¥]?([\d.,]+)`)
	psAnte       = regexp.MustCompile(`(.+?): posts the ante [$€£¥]?([\d.,]+)`)
	psDealtTo    = regexp.MustCompile(`Dealt to (.+?) \[([^\]]+)\]`)
	psFlop       = regexp.MustCompile(`\*\*\* FLOP \*\*\* \[([^\]]+)\]`)
	psTurn       = regexp.MustCompile(`\*\*\* TURN \*\*\* \[[^\]]+\] \[([^\]]+)\]`)
	psRiver      = regexp.MustCompile(`\*\*\* RIVER \*\*\* \[[^\]]+\] \[([^\]]+)\]`)
	psCollected  = regexp.MustCompile(`(.+?) collected [$€£¥]?([\d.,]+) from (?:the )?(?:main |side )?pot`)
	psShows      = regexp.MustCompile(`(?m)^(.+?): shows \[`)
	psTotalPot   = regexp.MustCompile(`Total pot [$€£¥]?([\d.,]+)`)
	psRake       = regexp.MustCompile(`Rake [$€£¥]?([\d.,]+)`)
)

// Platform implements Parser
func (p *PokerStarsParser) Platform() platform.Platform { return platform.PokerStars }

// CanParse implements Parser
func (p *PokerStarsParser) CanParse(text string) bool {
	return psHeader.MatchString(text)
}

// ParseHands implements Parser
func (p *PokerStarsParser) ParseHands(text string) ([]*hand.Hand, []*ParseError, error) {
	if !p.CanParse(text) {
		return nil, nil, fmt.Errorf("text is not PokerStars format")
	}

	blocks := splitBlocks(text, psHeader)
	if len(blocks) == 0 {
		return nil, nil, fmt.Errorf("no hand blocks found")
	}

	var hands []*hand.Hand
	var errs []*ParseError
	for i, block := range blocks {
		h, err := p.parseBlock(block)
		if err != nil {
			errs = append(errs, newParseError(platform.PokerStars, i, block, err))
			continue
		}
		hands = append(hands, h)
	}
	return hands, errs, nil
}

func (p *PokerStarsParser) parseBlock(block string) (*hand.Hand, error) {
	handID, ok := firstGroup(psHeader, block)
	if !ok {
		return nil, fmt.Errorf("no hand header found")
	}

	h := &hand.Hand{
		HandID:   handID,
		Platform: string(platform.PokerStars),
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
	p.extractBoard(h, block)
	p.extractActions(h, block)
	p.extractResult(h, block)
	p.extractSummary(h, block)
	p.computePosition(h)

	return h, nil
}

func (p *PokerStarsParser) extractGameContext(h *hand.Hand, block string) {
	if gameType, ok := firstGroup(psGameType, block); ok {
		h.GameType = strings.TrimSpace(gameType)
	}

	if m := psStakes.FindStringSubmatch(block); m != nil {
		small, currency, err1 := hand.ParseAmount(m[1])
		big, _, err2 := hand.ParseAmount(m[2])
		if err1 == nil && err2 == nil {
			h.Blinds.Small = small
			h.Blinds.Big = big
			h.Stakes = m[1] + "/" + m[2]
			h.Currency = currency
			if m[3] != "" {
				h.Currency = m[3]
			}
		}
		// Stakes without any currency symbol or code are play money tables
		if !strings.ContainsAny(m[1], "$€£¥") && m[3] == "" {
			h.IsPlayMoney = true
		}
	}

	if m := psDate.FindStringSubmatch(block); m != nil {
		if t, tz, err := hand.ParseDateTime(m[1]); err == nil {
			h.DatePlayed = t
			h.Timezone = tz
		}
	}

	if m := psTournament.FindStringSubmatch(block); m != nil {
		h.GameFormat = hand.FormatTournament
		if strings.Contains(block, "Sit & Go") || strings.Contains(block, "Sit and Go") {
			h.GameFormat = hand.FormatSitAndGo
		}
		buyIn, _, _ := hand.ParseAmount(m[2])
		fee, _, _ := hand.ParseAmount(m[3])
		h.Tournament = &hand.TournamentInfo{
			TournamentID: m[1],
			BuyIn:        buyIn + fee,
		}
		if level, ok := firstGroup(psLevel, block); ok {
			h.Tournament.Level = level
		}
		h.IsPlayMoney = false
	} else {
		h.GameFormat = hand.FormatCash
	}
}

func (p *PokerStarsParser) extractTable(h *hand.Hand, block string) {
	m := psTable.FindStringSubmatch(block)
	if m == nil {
		return
	}
	maxPlayers, _ := strconv.Atoi(m[2])
	button, _ := strconv.Atoi(m[3])
	h.TableSize = maxPlayers
	h.ButtonPosition = button
	if strings.Contains(m[0], "(Play Money)") {
		h.IsPlayMoney = true
	}
	if h.GameFormat == hand.FormatCash {
		h.CashGame = &hand.CashGameInfo{
			TableName:  m[1],
			MaxPlayers: maxPlayers,
		}
	}
}

func (p *PokerStarsParser) extractSeats(h *hand.Hand, block string) {
	for _, m := range psSeat.FindAllStringSubmatch(block, -1) {
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
	// Seat-line count stands in for a missing table marker
	if h.TableSize == 0 && len(h.PlayerStacks) > 0 {
		h.TableSize = len(h.PlayerStacks)
	}
}

func (p *PokerStarsParser) extractBlinds(h *hand.Hand, block string) {
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

func (p *PokerStarsParser) extractHeroCards(h *hand.Hand, block string) {
	if p.opts.FocalUsername == "" {
		return
	}
	for _, m := range psDealtTo.FindAllStringSubmatch(block, -1) {
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

// extractBoard accumulates the board street by street, each marker match
// narrowing the remaining unparsed suffix so a replayed board line in the
// summary is never double counted.
func (p *PokerStarsParser) extractBoard(h *hand.Hand, block string) {
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

func (p *PokerStarsParser) extractActions(h *hand.Hand, block string) {
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

func (p *PokerStarsParser) extractResult(h *hand.Hand, block string) {
	if p.opts.FocalUsername == "" {
		return
	}
	hero := p.opts.FocalUsername

	showdown := strings.Contains(block, "*** SHOW DOWN ***")
	heroShowed := false
	for _, m := range psShows.FindAllStringSubmatch(block, -1) {
		if m[1] == hero {
			heroShowed = true
		}
	}

	var heroWon float64
	collectors := map[string]bool{}
	for _, m := range psCollected.FindAllStringSubmatch(block, -1) {
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

func (p *PokerStarsParser) extractSummary(h *hand.Hand, block string) {
	if m := psTotalPot.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[1]); err == nil {
			h.PotSize = v
		}
	}
	if m := psRake.FindStringSubmatch(block); m != nil {
		if v, err := hand.ParseDecimal(m[1]); err == nil {
			h.Rake = v
		}
	}
}

func (p *PokerStarsParser) computePosition(h *hand.Hand) {
	if h.SeatNumber == 0 || h.ButtonPosition == 0 || h.TableSize == 0 {
		return
	}
	h.Position = PositionLabel(h.SeatNumber, h.ButtonPosition, h.TableSize)
}
