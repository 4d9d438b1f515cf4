// Package parser extracts structured hand records from raw platform text.
// There is one parser per platform behind a common capability interface;
// each one is a pure function of its input text plus the configured focal
// username.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lox/handhistory/internal/hand"
	"github.com/lox/handhistory/internal/platform"
)

// Parser is the per-platform parsing capability
type Parser interface {
	// Platform returns the platform this parser handles
	Platform() platform.Platform
	// CanParse reports whether the text looks like this platform's format
	CanParse(text string) bool
	// ParseHands splits text into hand blocks and parses each independently.
	// Per-block failures are returned alongside the successes; a non-nil
	// error means the blob itself could not be processed at all.
	ParseHands(text string) ([]*hand.Hand, []*ParseError, error)
}

// ParseError is a typed per-block parse failure. It carries a bounded
// excerpt of the offending block for operator triage.
type ParseError struct {
	Platform platform.Platform
	Block    int
	Excerpt  string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: block %d: %v", e.Platform, e.Block, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

const excerptLen = 100

// newParseError wraps err with a bounded excerpt of the block text
func newParseError(p platform.Platform, block int, text string, err error) *ParseError {
	excerpt := strings.TrimSpace(text)
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return &ParseError{Platform: p, Block: block, Excerpt: excerpt, Err: err}
}

// New returns the parser for the given platform
func New(p platform.Platform, opts Options) (Parser, error) {
	switch p {
	case platform.PokerStars:
		return NewPokerStars(opts), nil
	case platform.GGPoker:
		return NewGGPoker(opts), nil
	case platform.PartyPoker:
		return NewPartyPoker(opts), nil
	default:
		return nil, fmt.Errorf("no parser registered for platform %q", p)
	}
}

// All returns one parser per supported platform, in detection order
func All(opts Options) []Parser {
	parsers := make([]Parser, 0, len(platform.Supported))
	for _, p := range platform.Supported {
		parser, err := New(p, opts)
		if err != nil {
			continue
		}
		parsers = append(parsers, parser)
	}
	return parsers
}

// Options configures parsing behavior shared by all platforms
type Options struct {
	// FocalUsername scopes hero card, position and result extraction.
	// When empty those fields are left unset.
	FocalUsername string
}

var blankLineRun = regexp.MustCompile(`\n[ \t]*\n+`)

// splitBlocks cuts raw text into per-hand blocks. Hands are separated by
// blank-line runs; chunks that do not open with the platform's header are
// treated as continuations of the previous block (some exporters wrap
// summaries after a stray blank line).
func splitBlocks(text string, header *regexp.Regexp) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	chunks := blankLineRun.Split(text, -1)

	var blocks []string
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if header.MatchString(chunk) || len(blocks) == 0 {
			blocks = append(blocks, chunk)
			continue
		}
		blocks[len(blocks)-1] += "\n\n" + chunk
	}
	return blocks
}

// firstGroup returns the first capture group of the first match of re in
// text, if any.
func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil || len(m) < 2 {
		return "", false
	}
	return m[1], true
}
