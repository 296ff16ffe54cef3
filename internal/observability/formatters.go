// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/teammatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-fills s with spaces to the inner box width, counting runes.
func pad(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= boxWidth-4 {
		return s
	}
	return s + strings.Repeat(" ", boxWidth-4-n)
}

// shorten truncates s to limit runes, marking the cut with "...".
func shorten(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// PrintMatches outputs the top ranked matches with scores and shared skills.
// byCandidate labels each entry with its candidate instead of its project.
func (p *Printer) PrintMatches(title string, ranked *types.RankedMatches, byCandidate bool) {
	if ranked == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ranked: %d   Skipped: %d\n", len(ranked.Matches), ranked.Skipped))
	if len(ranked.Matches) == 0 {
		sb.WriteString("\nNo matches")
		p.printBox(title, sb.String())
		return
	}
	sb.WriteString("\n")

	count := min(len(ranked.Matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := ranked.Matches[i]
		id := m.TargetID
		if byCandidate {
			id = m.CandidateID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, id))
		sb.WriteString(fmt.Sprintf("    Score: %.3f\n", m.Score))
		if len(m.SharedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Shared: %s\n", shorten(strings.Join(m.SharedSkills, ", "), 40)))
		}
		if len(m.ComplementarySkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", shorten(strings.Join(m.ComplementarySkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked.Matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(ranked.Matches)-maxItemsToShow))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatch outputs a single match with its score breakdown.
func (p *Printer) PrintMatch(m *types.Match) {
	if m == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target:  %s\n", m.TargetID))
	if m.CandidateID != "" {
		sb.WriteString(fmt.Sprintf("Profile: %s\n", m.CandidateID))
	}
	sb.WriteString(fmt.Sprintf("Score:   %.3f\n", m.Score))

	if b := m.Breakdown; b != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  skills       %.3f\n", b.SkillOverlap))
		sb.WriteString(fmt.Sprintf("  similarity   %.3f\n", b.EmbeddingSimilarity))
		sb.WriteString(fmt.Sprintf("  roles        %.3f\n", b.RoleMatch))
		sb.WriteString(fmt.Sprintf("  experience   %.3f\n", b.ExperienceFit))
		sb.WriteString(fmt.Sprintf("  availability %.3f\n", b.Availability))
		sb.WriteString(fmt.Sprintf("  hackathons   %.3f\n", b.HackathonBonus))
		sb.WriteString(fmt.Sprintf("  tie-break    +%.2f\n", b.TieBreakBoost))

		if len(b.Conditions) > 0 {
			keys := make([]string, 0, len(b.Conditions))
			for k := range b.Conditions {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			sb.WriteString("\nNeutral:\n")
			for _, k := range keys {
				sb.WriteString(fmt.Sprintf("  • %s: %s\n", k, b.Conditions[k]))
			}
		}
	}

	if len(m.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		for _, r := range m.Reasons {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}

	p.printBox("MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs skills found in free text, grouped by category.
func (p *Printer) PrintSkills(resp *types.ExtractSkillsResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n", len(resp.AllSkills)))
	if len(resp.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("Roles:        %s\n", strings.Join(resp.Roles, ", ")))
	}

	categories := make([]string, 0, len(resp.SkillsByCategory))
	for c := range resp.SkillsByCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	if len(categories) > 0 {
		sb.WriteString("\n")
	}
	for _, c := range categories {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", c, strings.Join(resp.SkillsByCategory[c], ", ")))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEmbedding outputs a short summary of a vector: its size, how many
// components are set, and its norm.
func (p *Printer) PrintEmbedding(id string, vec []float32) {
	nonZero := 0
	var sum float64
	for _, v := range vec {
		if v != 0 {
			nonZero++
		}
		sum += float64(v) * float64(v)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Record:     %s\n", id))
	sb.WriteString(fmt.Sprintf("Dimensions: %d\n", len(vec)))
	sb.WriteString(fmt.Sprintf("Non-zero:   %d\n", nonZero))
	sb.WriteString(fmt.Sprintf("Norm:       %.4f", math.Sqrt(sum)))

	p.printBox("EMBEDDING", sb.String())
}
