package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/handhistory/internal/dedupe"
	"github.com/lox/handhistory/internal/fileutil"
	"github.com/lox/handhistory/internal/hand"
	"github.com/lox/handhistory/internal/parser"
	"github.com/lox/handhistory/internal/platform"
	"github.com/lox/handhistory/internal/report"
	"github.com/lox/handhistory/internal/validate"
)

// HandParsingError reports that an entire blob of hand history text could
// not be parsed for its detected platform.
type HandParsingError struct {
	Platform platform.Platform
	Preview  string
	Err      error
}

func (e *HandParsingError) Error() string {
	return fmt.Sprintf("failed to parse %s hand history: %v", e.Platform, e.Err)
}

func (e *HandParsingError) Unwrap() error { return e.Err }

// ErrorDetail describes a single hand or block that was rejected during a
// parse session. ValidationErrors is populated only for validation failures.
type ErrorDetail struct {
	HandID           string
	ErrorType        string
	ErrorMessage     string
	ValidationErrors []string
}

// Statistics summarises the state of a parse session
type Statistics struct {
	SupportedPlatforms []string
	ParsersRegistered  int
	Duplicates         dedupe.Stats
	ErrorSummary       map[string]int
	ErrorsTotal        int
}

// Service orchestrates platform detection, parsing, validation and duplicate
// tracking across a session of files or content blobs.
type Service struct {
	logger  *log.Logger
	config  *Config
	parsers map[platform.Platform]parser.Parser

	mu         sync.Mutex
	validator  *validate.Validator
	tracker    *dedupe.Tracker
	classifier *report.Classifier
}

// New creates a Service with parsers registered for every supported platform
func New(config *Config, logger *log.Logger) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	opts := parser.Options{FocalUsername: config.Parser.PlayerUsername}
	parsers := make(map[platform.Platform]parser.Parser)
	for _, p := range parser.All(opts) {
		parsers[p.Platform()] = p
	}

	return &Service{
		logger:     logger,
		config:     config,
		parsers:    parsers,
		validator:  validate.New(),
		tracker:    dedupe.NewTracker(),
		classifier: report.NewClassifier(),
	}
}

// ParseContent detects the platform of text and parses, validates and
// deduplicates every hand in it. Per-hand failures are reported through the
// returned details and never abort the batch. A nil error with a non-empty
// detail slice means the blob itself was readable but some hands were
// rejected.
func (s *Service) ParseContent(text string) ([]*hand.Hand, []ErrorDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	detected, err := platform.Detect(text)
	if err != nil {
		s.classifier.Handle(err, text, nil)
		return nil, nil, err
	}

	p, ok := s.parsers[detected]
	if !ok {
		err := fmt.Errorf("%w: no parser registered for %s", platform.ErrUnsupportedPlatform, detected)
		s.classifier.Handle(err, text, nil)
		return nil, nil, err
	}

	hands, parseErrs, err := p.ParseHands(text)
	if err != nil {
		s.classifier.HandleAs(report.TypeHandParsing, err.Error(), text, map[string]string{
			"platform": string(detected),
		})
		return nil, nil, &HandParsingError{Platform: detected, Preview: preview(text), Err: err}
	}

	var details []ErrorDetail
	for _, pe := range parseErrs {
		s.classifier.Handle(pe, pe.Excerpt, map[string]string{
			"platform": string(detected),
			"block":    fmt.Sprintf("%d", pe.Block),
		})
		details = append(details, ErrorDetail{
			ErrorType:    report.TypeHandParsing,
			ErrorMessage: pe.Error(),
		})
	}

	processed := len(hands) + len(parseErrs)
	if len(parseErrs) > 0 && !s.classifier.ShouldContinue(processed, s.config.Parser.ErrorRateThreshold) {
		err := fmt.Errorf("error rate exceeded threshold %.2f, aborting", s.config.Parser.ErrorRateThreshold)
		s.logger.Error("too many parse failures", "platform", detected, "errors", len(parseErrs))
		return nil, details, &HandParsingError{Platform: detected, Preview: preview(text), Err: err}
	}

	valid := make([]*hand.Hand, 0, len(hands))
	for _, h := range hands {
		ok, problems := s.validator.Validate(h, s.config.Parser.StrictValidation)
		if !ok {
			s.classifier.HandleAs(report.TypeValidation, strings.Join(problems, "; "), h.RawText, map[string]string{
				"hand_id": h.HandID,
			})
			details = append(details, ErrorDetail{
				HandID:           h.HandID,
				ErrorType:        report.TypeValidation,
				ErrorMessage:     fmt.Sprintf("hand %s failed validation", h.HandID),
				ValidationErrors: problems,
			})
			continue
		}

		if s.tracker.IsDuplicate(h) {
			s.classifier.HandleAs(report.TypeDuplicateHand, fmt.Sprintf("duplicate hand %s", h.HandID), h.RawText, map[string]string{
				"hand_id": h.HandID,
			})
			details = append(details, ErrorDetail{
				HandID:       h.HandID,
				ErrorType:    report.TypeDuplicateHand,
				ErrorMessage: fmt.Sprintf("hand %s already seen this session", h.HandID),
			})
			continue
		}

		valid = append(valid, h)
	}

	s.logger.Debug("parsed content",
		"platform", detected,
		"hands", len(hands),
		"valid", len(valid),
		"rejected", len(details))

	return valid, details, nil
}

// ParseFile reads path and parses its contents. Missing files fail before
// any platform detection is attempted.
func (s *Service) ParseFile(path string) ([]*hand.Hand, []ErrorDetail, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("hand history file %s: %w", path, err)
	}

	text, err := fileutil.ReadTextFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return s.ParseContent(text)
}

// ResetDuplicateTracking clears session duplicate state so the same hands
// can be accepted again
func (s *Service) ResetDuplicateTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
}

// ResetSession clears both duplicate tracking and accumulated error state
func (s *Service) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker.Reset()
	s.classifier.Reset()
}

// ParsingStatistics reports the current session state
func (s *Service) ParsingStatistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	supported := make([]string, 0, len(platform.Supported))
	for _, p := range platform.Supported {
		supported = append(supported, string(p))
	}

	return Statistics{
		SupportedPlatforms: supported,
		ParsersRegistered:  len(s.parsers),
		Duplicates:         s.tracker.Stats(),
		ErrorSummary:       s.classifier.Summary(),
		ErrorsTotal:        s.classifier.Total(),
	}
}

// RecentErrors returns the most recent classified error records
func (s *Service) RecentErrors() []report.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifier.Recent()
}

// DefaultPaths returns the conventional hand history directories for a
// platform on this machine. Configured history blocks take precedence.
func (s *Service) DefaultPaths(p platform.Platform) []string {
	for _, h := range s.config.Histories {
		if platform.Platform(h.Platform) == p {
			return h.Paths
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	switch p {
	case platform.PokerStars:
		return []string{
			filepath.Join(home, "Library", "Application Support", "PokerStars", "HandHistory"),
			filepath.Join(home, "AppData", "Local", "PokerStars", "HandHistory"),
		}
	case platform.GGPoker:
		return []string{
			filepath.Join(home, "Documents", "GGPoker", "HandHistory"),
		}
	case platform.PartyPoker:
		return []string{
			filepath.Join(home, "AppData", "Local", "PartyGaming", "PartyPoker", "HandHistory"),
		}
	default:
		return nil
	}
}

// ScanDirectory finds hand history text files under root, optionally
// recursing into subdirectories. Results are sorted for stable output.
func (s *Service) ScanDirectory(root string, recurse bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recurse && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func preview(text string) string {
	const n = 100
	if len(text) > n {
		return text[:n]
	}
	return text
}
