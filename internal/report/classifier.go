// Package report classifies parsing failures and renders batch summaries.
package report

import (
	"time"

	"github.com/coder/quartz"
)

// Record is one classified parsing error, bounded and loggable
type Record struct {
	Time    time.Time
	Type    string
	Message string
	Preview string
	Context map[string]string
}

const (
	// defaultCapacity bounds the ring of recent records
	defaultCapacity = 100
	// previewLen bounds the stored text excerpt
	previewLen = 100
	// recentWindow is how many trailing records the rate gate inspects
	recentWindow = 10
)

// Classifier wraps errors and malformed-input cases into typed records. It
// keeps a bounded ring of recent records and per-type counts, scoped to one
// parser-service instance. Not safe for concurrent use without external
// synchronization.
type Classifier struct {
	clock    quartz.Clock
	capacity int

	recent []Record
	counts map[string]int
	total  int
}

// NewClassifier creates a classifier using the real clock
func NewClassifier() *Classifier {
	return NewClassifierWithClock(quartz.NewReal())
}

// NewClassifierWithClock creates a classifier with an injected clock
func NewClassifierWithClock(clock quartz.Clock) *Classifier {
	return &Classifier{
		clock:    clock,
		capacity: defaultCapacity,
		counts:   make(map[string]int),
	}
}

// Handle classifies err into a Record, retaining a bounded preview of the
// offending text, and tracks it in the ring and the type counts.
func (c *Classifier) Handle(err error, excerpt string, context map[string]string) Record {
	return c.HandleAs(classify(err), err.Error(), excerpt, context)
}

// HandleAs records an error under an explicit discriminator for callers
// that already classified the failure (validation rejects, duplicates).
func (c *Classifier) HandleAs(errType, message, excerpt string, context map[string]string) Record {
	preview := excerpt
	if len(preview) > previewLen {
		preview = preview[:previewLen]
	}

	record := Record{
		Time:    c.clock.Now(),
		Type:    errType,
		Message: message,
		Preview: preview,
		Context: context,
	}

	c.recent = append(c.recent, record)
	if len(c.recent) > c.capacity {
		c.recent = c.recent[len(c.recent)-c.capacity:]
	}
	c.counts[errType]++
	c.total++

	return record
}

// Recent returns the retained records, oldest first
func (c *Classifier) Recent() []Record {
	out := make([]Record, len(c.recent))
	copy(out, c.recent)
	return out
}

// Summary returns the per-type error counts
func (c *Classifier) Summary() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Total returns how many errors have been handled
func (c *Classifier) Total() int {
	return c.total
}

// Reset clears all classifier state
func (c *Classifier) Reset() {
	c.recent = nil
	c.counts = make(map[string]int)
	c.total = 0
}

// ShouldContinue reports whether batch processing should carry on. It looks
// at the error rate over the recent window rather than the absolute count:
// an isolated bad hand never halts a batch, a systemic format mismatch does.
// handledItems is how many items the batch has processed so far.
func (c *Classifier) ShouldContinue(handledItems int, threshold float64) bool {
	if handledItems == 0 || len(c.recent) == 0 {
		return true
	}

	window := len(c.recent)
	if window > recentWindow {
		window = recentWindow
	}
	items := handledItems
	if items > recentWindow {
		items = recentWindow
	}

	rate := float64(window) / float64(items)
	return rate <= threshold
}
