package reconcile_test

import (
	"bytes"
	"fmt"
	"slices"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/engine/reconcile"
)

// numbered returns a buffer whose line i reads "l<i>".
func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("l%d", i+1)
	}
	return lines
}

// insertBefore inserts text in front of the 1-based line.
func insertBefore(lines []string, line int, text string) []string {
	return slices.Insert(slices.Clone(lines), line-1, text)
}

func issueAt(line int) domain.Issue {
	return domain.Issue{
		FromLinter:  "govet",
		Text:        fmt.Sprintf("issue at %d", line),
		Pos:         domain.Position{Filename: "main.go", Line: line},
		SourceLines: []string{fmt.Sprintf("l%d", line)},
	}
}

func lines(placements []domain.Placement) []int {
	out := make([]int, 0, len(placements))
	for _, p := range placements {
		out = append(out, p.Line)
	}
	return out
}

func TestReconcile_UneditedBufferRoundTrips(t *testing.T) {
	issues := []domain.Issue{issueAt(3), issueAt(7), issueAt(12)}

	res := reconcile.Reconcile(issues, numbered(20))

	require.Len(t, res.Placements, 3)
	for i, p := range res.Placements {
		assert.Equal(t, issues[i].Pos.Line, p.Line)
		assert.Zero(t, p.Shift)
	}
	assert.Zero(t, res.Dropped)
	assert.False(t, res.Stopped)
}

func TestReconcile_InsertedLineShiftsFollowingIssues(t *testing.T) {
	buffer := insertBefore(numbered(20), 10, "new")
	withRange := issueAt(10)
	withRange.LineRange = &domain.LineRange{From: 10, To: 12}

	res := reconcile.Reconcile([]domain.Issue{issueAt(3), withRange, issueAt(15)}, buffer)

	assert.Equal(t, []int{3, 11, 16}, lines(res.Placements))
	assert.Equal(t, 0, res.Placements[0].Shift)
	assert.Equal(t, 1, res.Placements[1].Shift)
	assert.Equal(t, &domain.LineRange{From: 11, To: 13}, res.Placements[1].Issue.LineRange)
	assert.Equal(t, &domain.LineRange{From: 10, To: 12}, withRange.LineRange, "input must not be modified")
	assert.Zero(t, res.Dropped)
}

func TestReconcile_IssueWithoutSourceIsAcceptedUnverified(t *testing.T) {
	buffer := insertBefore(numbered(20), 10, "new")
	bare := domain.Issue{FromLinter: "unused", Pos: domain.Position{Filename: "main.go", Line: 12}}

	res := reconcile.Reconcile([]domain.Issue{bare, issueAt(10)}, buffer)

	// Sorted by line: 10 re-anchors to 11, then 12 follows with the same shift.
	assert.Equal(t, []int{11, 13}, lines(res.Placements))
	assert.Equal(t, "unused", res.Placements[1].Issue.FromLinter)
}

func TestReconcile_OutOfBoundsIsDropped(t *testing.T) {
	res := reconcile.Reconcile([]domain.Issue{issueAt(5), issueAt(25)}, numbered(20))

	assert.Equal(t, []int{5}, lines(res.Placements))
	assert.Equal(t, 1, res.Dropped)
}

func TestReconcile_NoMatchInWindowDropsAndContinues(t *testing.T) {
	buffer := numbered(20)
	buffer[9] = "changed"

	res := reconcile.Reconcile([]domain.Issue{issueAt(10), issueAt(14)}, buffer)

	assert.Equal(t, []int{14}, lines(res.Placements))
	assert.Equal(t, 1, res.Dropped)
}

func TestReconcile_FirstMatchInScanOrderWins(t *testing.T) {
	buffer := numbered(20)
	buffer[9] = "edited"
	buffer[5] = "target"  // line 6, distance 4
	buffer[12] = "target" // line 13, distance 3

	issue := domain.Issue{Pos: domain.Position{Line: 10}, SourceLines: []string{"target"}}
	res := reconcile.Reconcile([]domain.Issue{issue}, buffer)

	require.Len(t, res.Placements, 1)
	assert.Equal(t, 6, res.Placements[0].Line)
	assert.Equal(t, -4, res.Placements[0].Shift)
}

func TestReconcile_WindowGrowsWithShiftCount(t *testing.T) {
	// The first anchor moves by one line, the second by six more.
	buffer := insertBefore(numbered(40), 10, "a")
	for range 6 {
		buffer = insertBefore(buffer, 21, "b")
	}

	res := reconcile.Reconcile([]domain.Issue{issueAt(10), issueAt(20)}, buffer)

	// Issue 20 lands at 27, one line past the reach of a radius-5 window.
	// The first issue sat in the dirty zone and is discarded by the second mismatch.
	assert.Equal(t, []int{27}, lines(res.Placements))
	assert.Equal(t, 7, res.Placements[0].Shift)
	assert.Equal(t, 1, res.Dropped)
}

func TestReconcile_StopsAfterShiftBudget(t *testing.T) {
	buffer := numbered(100)
	// Every insertion forces another re-anchor.
	for i, line := range []int{10, 20, 30, 40, 50} {
		buffer = insertBefore(buffer, line+i, "x")
	}

	issues := []domain.Issue{issueAt(5)}
	for _, line := range []int{10, 20, 30, 40, 50, 60} {
		issues = append(issues, issueAt(line))
	}

	res := reconcile.Reconcile(issues, buffer)

	assert.True(t, res.Stopped)
	assert.Equal(t, []int{5}, lines(res.Placements))
	assert.Equal(t, 6, res.Dropped)
}

func TestReconcile_Golden(t *testing.T) {
	buffer := insertBefore(numbered(20), 10, "new")
	issues := []domain.Issue{
		{FromLinter: "gosec", Text: "weak random", Pos: domain.Position{Filename: "main.go", Line: 15}, SourceLines: []string{"l15"}},
		{FromLinter: "govet", Text: "printf mismatch", Pos: domain.Position{Filename: "main.go", Line: 3}, SourceLines: []string{"l3"}},
		{FromLinter: "unused", Text: "func unused", Pos: domain.Position{Filename: "main.go", Line: 7}},
		{FromLinter: "errcheck", Text: "unchecked error", Pos: domain.Position{Filename: "main.go", Line: 10}, SourceLines: []string{"l10"}},
		{FromLinter: "lll", Text: "line too long", Pos: domain.Position{Filename: "main.go", Line: 30}, SourceLines: []string{"l30"}},
	}

	res := reconcile.Reconcile(issues, buffer)

	var buf bytes.Buffer
	for _, p := range res.Placements {
		fmt.Fprintf(&buf, "%d\t%+d\t%s\t%s\n", p.Line, p.Shift, p.Issue.FromLinter, p.Issue.Text)
	}
	fmt.Fprintf(&buf, "dropped %d stopped %t\n", res.Dropped, res.Stopped)

	g := goldie.New(t)
	g.Assert(t, "inserted_line", buf.Bytes())
}
