package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handhistory/internal/hand"
)

const ggCashHand = `Poker Hand #RC2233445566: Hold'em No Limit ($0.05/$0.10) - 2024-03-10 14:22:05
Table 'RushAndCash0042' 6-max Seat #2 is the button
Seat 1: f1e77a2c ($12.40 in chips)
Seat 2: Hero ($10.00 in chips)
Seat 3: 9bb01d44 ($8.55 in chips)
9bb01d44: posts small blind $0.05
f1e77a2c: posts big blind $0.10
*** HOLE CARDS ***
Dealt to Hero [Th Ts]
Hero: raises $0.20 to $0.30
9bb01d44: folds
f1e77a2c: calls $0.20
*** FLOP *** [4d 8c Qh]
f1e77a2c: checks
Hero: bets $0.45
f1e77a2c: folds
Uncalled bet ($0.45) returned to Hero
Hero collected $0.62 from pot
*** SUMMARY ***
Total pot $0.65 | Rake $0.02 | Jackpot $0.01
Board [4d 8c Qh]`

const ggTournamentHand = `Poker Hand #TM998877: Tournament #445566, $10+$1 Hold'em No Limit - Level3(50/100) - 2024-03-11 19:00:00
Table '12' 9-max Seat #4 is the button
Seat 4: Hero (5000 in chips)
Seat 6: b2c3d4 (4400 in chips)
b2c3d4: posts small blind 50
Hero: posts big blind 100
*** HOLE CARDS ***
Dealt to Hero [7c 7d]
b2c3d4: calls 50
Hero: checks
*** FLOP *** [2s 9h Kd]
Hero: checks
b2c3d4: checks
*** SUMMARY ***
Total pot 200 | Rake 0`

func TestGGPokerParseCashHand(t *testing.T) {
	p := NewGGPoker(Options{FocalUsername: "Hero"})
	require.True(t, p.CanParse(ggCashHand))

	hands, parseErrs, err := p.ParseHands(ggCashHand)
	require.NoError(t, err)
	require.Empty(t, parseErrs)
	require.Len(t, hands, 1)

	h := hands[0]
	assert.Equal(t, "2233445566", h.HandID)
	assert.Equal(t, "ggpoker", h.Platform)
	assert.Equal(t, hand.FormatCash, h.GameFormat)
	assert.Equal(t, "$0.05/$0.10", h.Stakes)
	require.NotNil(t, h.CashGame)
	assert.Equal(t, "RushAndCash0042", h.CashGame.TableName)

	assert.Equal(t, 2, h.SeatNumber)
	assert.Equal(t, "BTN", h.Position)
	require.Len(t, h.PlayerCards, 2)
	assert.Equal(t, "Th", h.PlayerCards[0].String())

	require.Len(t, h.BoardCards, 3)
	assert.Equal(t, "Qh", h.BoardCards[2].String())

	flop := h.Actions[hand.Flop]
	require.Len(t, flop, 3)
	assert.Equal(t, hand.ActionBet, flop[1].Kind)
	assert.InDelta(t, 0.45, flop[1].Amount, 0.0001)

	require.NotNil(t, h.Result)
	assert.Equal(t, hand.ResultWon, h.Result.Kind)
	assert.InDelta(t, 0.62, h.Result.AmountWon, 0.0001)
	assert.False(t, h.Result.ReachedShowdown)

	assert.InDelta(t, 0.65, h.PotSize, 0.0001)
	assert.InDelta(t, 0.02, h.Rake, 0.0001)
	assert.InDelta(t, 0.01, h.JackpotContribution, 0.0001)
}

func TestGGPokerParseTournamentHand(t *testing.T) {
	p := NewGGPoker(Options{FocalUsername: "Hero"})

	hands, parseErrs, err := p.ParseHands(ggTournamentHand)
	require.NoError(t, err)
	require.Empty(t, parseErrs)
	require.Len(t, hands, 1)

	h := hands[0]
	assert.Equal(t, "998877", h.HandID)
	assert.Equal(t, hand.FormatTournament, h.GameFormat)
	require.NotNil(t, h.Tournament)
	assert.Equal(t, "445566", h.Tournament.TournamentID)
	assert.InDelta(t, 11, h.Tournament.BuyIn, 0.0001)
	assert.Equal(t, "3", h.Tournament.Level)
	assert.Nil(t, h.CashGame)

	// Big blind's preflop check carries no amount
	preflop := h.Actions[hand.Preflop]
	require.Len(t, preflop, 2)
	assert.Equal(t, hand.ActionCheck, preflop[1].Kind)
	assert.Zero(t, preflop[1].Amount)
}

func TestGGPokerDoesNotClaimPokerStarsText(t *testing.T) {
	p := NewGGPoker(Options{})
	assert.False(t, p.CanParse(starsCashHand))
}
