package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BatchSummary aggregates one import run for operator display
type BatchSummary struct {
	Files      int
	Accepted   int
	Duplicates int
	Invalid    int
	Failures   []FailureLine
}

// FailureLine is one rejected hand with its reasons
type FailureLine struct {
	HandID  string
	Type    string
	Reasons []string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failureStyle = lipgloss.NewStyle().PaddingLeft(2)
)

// Render formats the batch summary for terminal display
func (s BatchSummary) Render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Import summary"))
	b.WriteString("\n")
	if s.Files > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("%d file(s) processed", s.Files)))
		b.WriteString("\n")
	}
	b.WriteString(okStyle.Render(fmt.Sprintf("  accepted    %d", s.Accepted)))
	b.WriteString("\n")
	b.WriteString(warnStyle.Render(fmt.Sprintf("  duplicates  %d", s.Duplicates)))
	b.WriteString("\n")
	b.WriteString(errStyle.Render(fmt.Sprintf("  invalid     %d", s.Invalid)))
	b.WriteString("\n")

	if len(s.Failures) > 0 {
		b.WriteString(titleStyle.Render("Failures"))
		b.WriteString("\n")
		for _, f := range s.Failures {
			id := f.HandID
			if id == "" {
				id = "(unknown)"
			}
			line := fmt.Sprintf("#%s %s", id, f.Type)
			if len(f.Reasons) > 0 {
				line += ": " + strings.Join(f.Reasons, "; ")
			}
			b.WriteString(failureStyle.Render(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderErrorSummary formats per-type counts, largest first
func RenderErrorSummary(counts map[string]int) string {
	if len(counts) == 0 {
		return subtleStyle.Render("no errors recorded")
	}

	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("  %-20s %d\n", e.name, e.count))
	}
	return b.String()
}
