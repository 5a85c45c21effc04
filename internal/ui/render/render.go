// Package render formats analyses for the command line and for MCP clients.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/linger/internal/adapters/golangci" //nolint:depguard // Linter listing is tool specific
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/ui/style"
)

// IssueView is one placed issue.
type IssueView struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Shift    int    `json:"shift,omitempty"`
	Linter   string `json:"linter"`
	Severity string `json:"severity,omitempty"`
	Text     string `json:"text"`
	HasFix   bool   `json:"hasFix,omitempty"`
}

// AnalysisView is the serializable form of an analysis of one file.
type AnalysisView struct {
	File       string      `json:"file"`
	Source     string      `json:"source"`
	ProducedAt time.Time   `json:"producedAt"`
	Dropped    int         `json:"dropped"`
	Stopped    bool        `json:"stopped,omitempty"`
	Linters    []string    `json:"linters,omitempty"`
	Issues     []IssueView `json:"issues"`
}

// NewAnalysisView converts an analysis of file into its view.
func NewAnalysisView(file string, a *domain.Analysis) AnalysisView {
	view := AnalysisView{
		File:       file,
		Source:     string(a.Source),
		ProducedAt: a.ProducedAt,
		Dropped:    a.Dropped,
		Stopped:    a.Stopped,
		Linters:    golangci.EnabledLinters(a.Linters),
		Issues:     make([]IssueView, 0, len(a.Placements)),
	}
	for _, p := range a.Placements {
		view.Issues = append(view.Issues, IssueView{
			Line:     p.Line,
			Column:   p.Issue.Pos.Column,
			Shift:    p.Shift,
			Linter:   p.Issue.FromLinter,
			Severity: p.Issue.Severity,
			Text:     p.Issue.Text,
			HasFix:   p.Issue.Replacement != nil,
		})
	}
	return view
}

// JSON writes view as indented JSON.
func JSON(w io.Writer, view AnalysisView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

// Text writes view as one line per issue followed by a summary line.
func Text(w io.Writer, view AnalysisView, profile termenv.Profile) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)

	location := r.NewStyle().Foreground(style.Slate)
	linter := r.NewStyle().Foreground(style.Iris).Bold(true)
	muted := r.NewStyle().Foreground(style.Slate).Faint(true)

	name := view.File
	if rel, err := filepath.Rel(".", view.File); err == nil && !filepath.IsAbs(rel) && rel[0] != '.' {
		name = rel
	}

	for _, issue := range view.Issues {
		icon := r.NewStyle().Foreground(style.SeverityColor(issue.Severity)).Render(style.Dot)
		pos := location.Render(fmt.Sprintf("%s:%d:%d", name, issue.Line, issue.Column))
		if _, err := fmt.Fprintf(w, "%s %s %s %s\n", icon, pos, linter.Render(issue.Linter), issue.Text); err != nil {
			return err
		}
	}

	summary := muted.Render(summarize(view))
	switch {
	case view.Source == string(domain.SourceStale):
		summary = r.NewStyle().Foreground(style.Yellow).Render(style.Tilde) + " " + summary
	case len(view.Issues) == 0:
		summary = r.NewStyle().Foreground(style.Green).Render(style.Check) + " " + summary
	}
	if _, err := fmt.Fprintln(w, summary); err != nil {
		return err
	}
	if len(view.Linters) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, muted.Render("linters: "+strings.Join(view.Linters, ", ")))
	return err
}

func summarize(view AnalysisView) string {
	s := fmt.Sprintf("%d issues (%s)", len(view.Issues), view.Source)
	if len(view.Issues) == 1 {
		s = fmt.Sprintf("1 issue (%s)", view.Source)
	}
	if view.Dropped > 0 {
		s += fmt.Sprintf(", %d could not be placed", view.Dropped)
	}
	if view.Stopped {
		s += ", placement stopped after too many edits"
	}
	return s
}
