package service

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handhistory/internal/platform"
	"github.com/lox/handhistory/internal/report"
)

const sampleCashHand = `PokerStars Hand #123456789:  Hold'em No Limit ($0.02/$0.05 USD) - 2024/01/15 20:00:00 ET
Table 'Aludra III' 6-max Seat #3 is the button
Seat 1: Player1 ($100.00 in chips)
Seat 2: Player2 ($95.50 in chips)
Seat 3: Player3 ($102.25 in chips)
Player1: posts small blind $0.02
Player2: posts big blind $0.05
*** HOLE CARDS ***
Dealt to Player1 [As Kh]
Player3: raises $0.10 to $0.15
Player1: calls $0.13
Player2: folds
*** FLOP *** [2c 7d Jh]
Player1: checks
Player3: bets $0.20
Player1: calls $0.20
*** TURN *** [2c 7d Jh] [5s]
Player1: checks
Player3: checks
*** RIVER *** [2c 7d Jh 5s] [9d]
Player1: bets $1.10
Player3: calls $1.10
*** SHOW DOWN ***
Player1: shows [As Kh] (high card Ace)
Player1 collected $3.00 from pot
*** SUMMARY ***
Total pot $3.00 | Rake $0.00
Board [2c 7d Jh 5s 9d]
Seat 1: Player1 (small blind) showed [As Kh] and won ($3.00) with high card Ace
Seat 2: Player2 (big blind) folded before Flop
Seat 3: Player3 (button) mucked`

func testService(t *testing.T) *Service {
	t.Helper()
	config := DefaultConfig()
	config.Parser.PlayerUsername = "Player1"
	return New(config, log.New(io.Discard))
}

func TestParseContentValidHand(t *testing.T) {
	svc := testService(t)

	hands, details, err := svc.ParseContent(sampleCashHand)
	require.NoError(t, err)
	assert.Empty(t, details)
	require.Len(t, hands, 1)

	h := hands[0]
	assert.Equal(t, "123456789", h.HandID)
	assert.Equal(t, string(platform.PokerStars), h.Platform)
	assert.Equal(t, "MP", h.Position)
	assert.InDelta(t, 3.00, h.PotSize, 0.0001)
}

func TestParseContentUnsupportedPlatform(t *testing.T) {
	svc := testService(t)

	hands, details, err := svc.ParseContent("a grocery list\nmilk\neggs\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
	assert.Empty(t, hands)
	assert.Empty(t, details)

	stats := svc.ParsingStatistics()
	assert.Equal(t, 1, stats.ErrorSummary[report.TypeUnsupportedPlatform])
}

func TestDuplicateHandsRejectedAcrossCalls(t *testing.T) {
	svc := testService(t)

	first, details, err := svc.ParseContent(sampleCashHand)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Empty(t, details)

	second, details, err := svc.ParseContent(sampleCashHand)
	require.NoError(t, err)
	assert.Empty(t, second)
	require.Len(t, details, 1)
	assert.Equal(t, report.TypeDuplicateHand, details[0].ErrorType)
	assert.Equal(t, "123456789", details[0].HandID)

	stats := svc.ParsingStatistics()
	assert.Equal(t, 1, stats.Duplicates.Duplicates)

	svc.ResetDuplicateTracking()
	third, details, err := svc.ParseContent(sampleCashHand)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Empty(t, details)
}

func TestValidationFailureProducesDetail(t *testing.T) {
	svc := testService(t)

	// Rake larger than the pot is internally inconsistent
	broken := strings.Replace(sampleCashHand, "Total pot $3.00 | Rake $0.00", "Total pot $1.00 | Rake $2.00", 1)

	hands, details, err := svc.ParseContent(broken)
	require.NoError(t, err)
	assert.Empty(t, hands)
	require.Len(t, details, 1)
	assert.Equal(t, report.TypeValidation, details[0].ErrorType)
	assert.Equal(t, "123456789", details[0].HandID)
	require.NotEmpty(t, details[0].ValidationErrors)
	assert.Contains(t, strings.Join(details[0].ValidationErrors, "; "), "rake")
}

func TestBatchCompleteness(t *testing.T) {
	svc := testService(t)

	text := sampleCashHand + "\n\n\nPokerStars Hand #111222333: truncated export with no seat lines"
	hands, details, err := svc.ParseContent(text)
	require.NoError(t, err)

	// Every block ends up accepted or accounted for, never dropped
	assert.Len(t, hands, 1)
	require.Len(t, details, 1)
	assert.Equal(t, report.TypeHandParsing, details[0].ErrorType)
}

func TestParseFileMissing(t *testing.T) {
	svc := testService(t)

	_, _, err := svc.ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseFileReadsContent(t *testing.T) {
	svc := testService(t)

	path := filepath.Join(t.TempDir(), "session.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleCashHand), 0o644))

	hands, details, err := svc.ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, details)
	require.Len(t, hands, 1)
	assert.Equal(t, "123456789", hands[0].HandID)
}

func TestStatistics(t *testing.T) {
	svc := testService(t)

	stats := svc.ParsingStatistics()
	assert.Equal(t, 3, stats.ParsersRegistered)
	assert.ElementsMatch(t, []string{"pokerstars", "ggpoker", "partypoker"}, stats.SupportedPlatforms)
	assert.Zero(t, stats.ErrorsTotal)
}

func TestScanDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "archive")
	require.NoError(t, os.Mkdir(sub, 0o755))
	for _, p := range []string{
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "notes.md"),
		filepath.Join(sub, "old.txt"),
	} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	svc := testService(t)

	flat, err := svc.ScanDirectory(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt")}, flat)

	deep, err := svc.ScanDirectory(root, true)
	require.NoError(t, err)
	assert.Len(t, deep, 3)
	assert.Contains(t, deep, filepath.Join(sub, "old.txt"))
}

func TestDefaultPathsPreferConfig(t *testing.T) {
	config := DefaultConfig()
	config.Histories = []HistoryConfig{
		{Platform: "pokerstars", Paths: []string{"/data/stars"}},
	}
	svc := New(config, log.New(io.Discard))

	assert.Equal(t, []string{"/data/stars"}, svc.DefaultPaths(platform.PokerStars))
	assert.NotEmpty(t, svc.DefaultPaths(platform.GGPoker))
}
