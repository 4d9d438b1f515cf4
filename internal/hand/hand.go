// Package hand defines the structured hand record produced by the platform
// parsers and consumed by validation, duplicate tracking and export.
package hand

import (
	"time"

	"github.com/lox/handhistory/internal/deck"
)

// GameFormat identifies the format a hand was played in
type GameFormat string

const (
	FormatCash       GameFormat = "cash"
	FormatTournament GameFormat = "tournament"
	FormatSitAndGo   GameFormat = "sng"
)

// Street represents one of the four betting rounds
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// Streets lists the betting rounds in play order
var Streets = []Street{Preflop, Flop, Turn, River}

// ActionKind enumerates the legal player actions
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "all-in"
)

// Action is a single entry in a street's ordered action sequence.
// Order is the literal turn order from the source text.
type Action struct {
	Player     string
	Kind       ActionKind
	Amount     float64
	IsAllIn    bool
	StackAfter float64
}

// ResultKind classifies the hero's outcome for the hand
type ResultKind string

const (
	ResultWon    ResultKind = "won"
	ResultLost   ResultKind = "lost"
	ResultFolded ResultKind = "folded"
	ResultSplit  ResultKind = "split"
)

// Result captures the hero's outcome
type Result struct {
	Kind            ResultKind
	AmountWon       float64
	ReachedShowdown bool
}

// Blinds holds the table's forced bets
type Blinds struct {
	Small float64
	Big   float64
	Ante  float64
}

// PlayerStack is one seat line: seat number, player name and starting stack
type PlayerStack struct {
	Seat       int
	Name       string
	Stack      float64
	SittingOut bool
}

// TournamentInfo is the format payload for tournament and sit-and-go hands
type TournamentInfo struct {
	TournamentID string
	BuyIn        float64
	Level        string
}

// CashGameInfo is the format payload for cash game hands
type CashGameInfo struct {
	TableName  string
	MaxPlayers int
}

// Hand is a single completed poker deal extracted from hand history text.
// (HandID, Platform) form the natural key used for duplicate detection.
// Exactly one of Tournament and CashGame is set, selected by GameFormat.
type Hand struct {
	HandID   string
	Platform string

	GameType    string
	GameFormat  GameFormat
	Stakes      string
	Currency    string
	IsPlayMoney bool
	Timezone    string
	DatePlayed  time.Time

	TableSize      int
	ButtonPosition int
	Blinds         Blinds
	PlayerStacks   []PlayerStack

	PlayerCards []deck.Card
	Position    string
	SeatNumber  int

	BoardCards []deck.Card

	Actions map[Street][]Action

	Result              *Result
	PotSize             float64
	Rake                float64
	JackpotContribution float64

	Tournament *TournamentInfo
	CashGame   *CashGameInfo

	// RawText is the verbatim source block, retained for audit and
	// duplicate fingerprinting.
	RawText string
}

// AllCards returns the hero's hole cards followed by the board cards
func (h *Hand) AllCards() []deck.Card {
	cards := make([]deck.Card, 0, len(h.PlayerCards)+len(h.BoardCards))
	cards = append(cards, h.PlayerCards...)
	cards = append(cards, h.BoardCards...)
	return cards
}

// ActionCount returns the total number of actions across all streets
func (h *Hand) ActionCount() int {
	n := 0
	for _, actions := range h.Actions {
		n += len(actions)
	}
	return n
}
