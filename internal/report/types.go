package report

import (
	"errors"

	"github.com/lox/handhistory/internal/parser"
	"github.com/lox/handhistory/internal/platform"
)

// Error type discriminators used in records and error details
const (
	TypeUnsupportedPlatform = "UnsupportedPlatform"
	TypeHandParsing         = "HandParsingError"
	TypeValidation          = "ValidationError"
	TypeDuplicateHand       = "DuplicateHand"
	TypeUnknown             = "UnknownError"
)

// classify maps an error to its discriminator
func classify(err error) string {
	var parseErr *parser.ParseError
	switch {
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		return TypeUnsupportedPlatform
	case errors.As(err, &parseErr):
		return TypeHandParsing
	default:
		return TypeUnknown
	}
}
