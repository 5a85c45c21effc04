package render_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/ui/render"
)

func sampleAnalysis() *domain.Analysis {
	return &domain.Analysis{
		Source:     domain.SourceCached,
		ProducedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Dropped:    1,
		Linters: []domain.LinterInfo{
			{Name: "errcheck", Enabled: true},
			{Name: "gofmt"},
			{Name: "unused", Enabled: true},
		},
		Placements: []domain.Placement{
			{
				Issue: domain.Issue{
					FromLinter: "errcheck",
					Text:       "Error return value is not checked",
					Pos:        domain.Position{Filename: "main.go", Line: 2, Column: 2},
				},
				Line:  3,
				Shift: 1,
			},
			{
				Issue: domain.Issue{
					FromLinter:  "unused",
					Text:        "func helper is unused",
					Severity:    "warning",
					Pos:         domain.Position{Filename: "main.go", Line: 10, Column: 6},
					Replacement: &domain.Replacement{NeedOnlyDelete: true},
				},
				Line: 10,
			},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	view := render.NewAnalysisView("main.go", sampleAnalysis())

	require.NoError(t, render.Text(&buf, view, termenv.Ascii))

	g := goldie.New(t)
	g.Assert(t, "text", buf.Bytes())
}

func TestText_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	view := render.NewAnalysisView("main.go", &domain.Analysis{Source: domain.SourceFresh})

	require.NoError(t, render.Text(&buf, view, termenv.Ascii))

	assert.Equal(t, "✓ 0 issues (fresh)\n", buf.String())
}

func TestText_StaleIsMarked(t *testing.T) {
	var buf bytes.Buffer
	view := render.NewAnalysisView("main.go", &domain.Analysis{Source: domain.SourceStale})

	require.NoError(t, render.Text(&buf, view, termenv.Ascii))

	assert.Equal(t, "~ 0 issues (stale)\n", buf.String())
}

func TestText_StoppedIsExplained(t *testing.T) {
	var buf bytes.Buffer
	view := render.NewAnalysisView("main.go", &domain.Analysis{Source: domain.SourceFresh, Dropped: 4, Stopped: true})

	require.NoError(t, render.Text(&buf, view, termenv.Ascii))

	assert.Equal(t, "✓ 0 issues (fresh), 4 could not be placed, placement stopped after too many edits\n", buf.String())
}

func TestNewAnalysisView_ListsEnabledLinters(t *testing.T) {
	view := render.NewAnalysisView("main.go", sampleAnalysis())

	assert.Equal(t, []string{"errcheck", "unused"}, view.Linters)
	assert.False(t, view.Stopped)
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	view := render.NewAnalysisView("main.go", sampleAnalysis())

	require.NoError(t, render.JSON(&buf, view))

	g := goldie.New(t)
	g.Assert(t, "json", buf.Bytes())
}

func TestNewAnalysisView_EmptyIssuesSerializeAsArray(t *testing.T) {
	view := render.NewAnalysisView("main.go", &domain.Analysis{Source: domain.SourceStale})

	require.NotNil(t, view.Issues)
	assert.Empty(t, view.Issues)
}
