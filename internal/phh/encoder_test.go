package phh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handhistory/internal/deck"
	"github.com/lox/handhistory/internal/hand"
)

func exportableHand() *hand.Hand {
	return &hand.Hand{
		HandID:         "123456789",
		Platform:       "pokerstars",
		GameFormat:     hand.FormatCash,
		Currency:       "USD",
		DatePlayed:     time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		Timezone:       "ET",
		TableSize:      6,
		ButtonPosition: 3,
		SeatNumber:     1,
		Blinds:         hand.Blinds{Small: 0.02, Big: 0.05},
		PlayerStacks: []hand.PlayerStack{
			{Seat: 1, Name: "Player1", Stack: 100},
			{Seat: 2, Name: "Player2", Stack: 95.50},
			{Seat: 3, Name: "Player3", Stack: 102.25},
		},
		PlayerCards: []deck.Card{
			{Rank: deck.Ace, Suit: deck.Spades},
			{Rank: deck.King, Suit: deck.Hearts},
		},
		BoardCards: []deck.Card{
			{Rank: deck.Two, Suit: deck.Clubs},
			{Rank: deck.Seven, Suit: deck.Diamonds},
			{Rank: deck.Jack, Suit: deck.Hearts},
		},
		Actions: map[hand.Street][]hand.Action{
			hand.Preflop: {
				{Player: "Player3", Kind: hand.ActionRaise, Amount: 0.15},
				{Player: "Player1", Kind: hand.ActionCall, Amount: 0.13},
				{Player: "Player2", Kind: hand.ActionFold},
			},
			hand.Flop: {
				{Player: "Player1", Kind: hand.ActionCheck},
				{Player: "Player3", Kind: hand.ActionBet, Amount: 0.20},
				{Player: "Player1", Kind: hand.ActionFold},
			},
		},
		CashGame: &hand.CashGameInfo{TableName: "Aludra III", MaxPlayers: 6},
	}
}

func TestFromHand(t *testing.T) {
	hh := FromHand(exportableHand())

	assert.Equal(t, "NT", hh.Variant)
	assert.Equal(t, "123456789", hh.HandID)
	assert.Equal(t, "Aludra III", hh.Table)
	assert.Equal(t, 6, hh.SeatCount)
	assert.Equal(t, []int{1, 2, 3}, hh.Seats)
	assert.Equal(t, []string{"Player1", "Player2", "Player3"}, hh.Players)
	assert.Equal(t, []int{10000, 9550, 10225}, hh.StartingStacks)
	assert.Equal(t, 5, hh.MinBet)

	// Button on seat 3 puts the blinds on seats 1 and 2
	assert.Equal(t, []int{2, 5, 0}, hh.BlindsOrStraddles)

	require.NotEmpty(t, hh.Actions)
	assert.Equal(t, "d dh p1 AsKh", hh.Actions[0])
	assert.Contains(t, hh.Actions, "p3 cbr 15")
	assert.Contains(t, hh.Actions, "d db 2c7dJh")
	assert.Contains(t, hh.Actions, "p2 f")

	assert.Equal(t, 2024, hh.Year)
	assert.Equal(t, 1, hh.Month)
	assert.Equal(t, 15, hh.Day)
	assert.Equal(t, "20:00:00", hh.Time)
	assert.Equal(t, "ET", hh.TimeZoneAbbrev)
}

func TestFromHandTournamentKeepsWholeChips(t *testing.T) {
	h := exportableHand()
	h.GameFormat = hand.FormatTournament
	h.Blinds = hand.Blinds{Small: 30, Big: 60, Ante: 5}
	h.PlayerStacks = []hand.PlayerStack{
		{Seat: 1, Name: "Player1", Stack: 1500},
		{Seat: 2, Name: "Player2", Stack: 2980},
	}
	h.CashGame = nil

	hh := FromHand(h)
	assert.Equal(t, []int{1500, 2980}, hh.StartingStacks)
	assert.Equal(t, []int{5, 5}, hh.Antes)
	assert.Equal(t, 60, hh.MinBet)
}

func TestEncodeRoundTripsThroughTOML(t *testing.T) {
	data, err := EncodeToBytes(FromHand(exportableHand()))
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `variant = "NT"`)
	assert.Contains(t, text, `hand = "123456789"`)
	assert.Contains(t, text, "starting_stacks")
}

func TestEncodeNilHand(t *testing.T) {
	_, err := EncodeToBytes(nil)
	assert.Error(t, err)
}
