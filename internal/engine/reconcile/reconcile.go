// Package reconcile relocates previously reported issues onto the current buffer.
//
// Issues carry the literal text of the line they were reported on. When the
// buffer has been edited since the report, that text is searched for near the
// expected position and the issue follows it. Issues that cannot be found
// with confidence are dropped rather than shown on the wrong line.
package reconcile

import (
	"cmp"
	"slices"

	"go.trai.ch/linger/internal/core/domain"
)

const (
	// MaxShiftCount is the number of re-anchoring searches after which processing stops.
	MaxShiftCount = 3
	// BaseRadius is the search window radius before any re-anchoring.
	BaseRadius = 5
)

// Result is the outcome of reconciling one file.
type Result struct {
	// Placements are the surfaced issues, before-bucket first, then after-bucket.
	Placements []domain.Placement
	// Dropped counts issues that were not surfaced.
	Dropped int
	// Stopped is set when the re-anchoring budget ran out before all issues were visited.
	Stopped bool
}

// Reconcile maps issues of a single file onto lines, the current buffer content.
// Issues are visited in line order; the input slice is not modified.
func Reconcile(issues []domain.Issue, lines []string) Result {
	ordered := slices.Clone(issues)
	slices.SortStableFunc(ordered, func(a, b domain.Issue) int {
		return cmp.Compare(a.Pos.Line, b.Pos.Line)
	})

	var (
		res        Result
		before     []domain.Placement
		after      []domain.Placement
		shift      int
		shiftCount int
		dirty      bool
	)

	accept := func(issue domain.Issue, line int) {
		p := place(issue, line, shift)
		if dirty {
			after = append(after, p)
			return
		}
		before = append(before, p)
	}

	for idx := 0; idx < len(ordered); idx++ {
		issue := ordered[idx]
		candidate := issue.Pos.Line + shift
		if candidate < 1 || candidate > len(lines) {
			res.Dropped++
			continue
		}

		expected, ok := issue.ExpectedSourceLine()
		if !ok {
			accept(issue, candidate)
			continue
		}

		if lines[candidate-1] == expected {
			accept(issue, candidate)
			continue
		}

		// Anything placed since the previous mismatch sits in an edited zone and
		// cannot be trusted now that a new boundary was found.
		res.Dropped += len(after)
		after = after[:0]
		dirty = true

		if shiftCount > MaxShiftCount {
			res.Dropped += len(ordered) - idx
			res.Stopped = true
			break
		}

		match, found := search(lines, expected, candidate, BaseRadius+shiftCount)
		if !found {
			res.Dropped++
			continue
		}

		shift = match - issue.Pos.Line
		shiftCount++
		idx-- // retry with the new shift
	}

	res.Placements = make([]domain.Placement, 0, len(before)+len(after))
	res.Placements = append(res.Placements, before...)
	res.Placements = append(res.Placements, after...)
	return res
}

// search scans [center-radius, center+radius] top to bottom for expected.
// The first match in scan order wins, even when a nearer one exists below it.
func search(lines []string, expected string, center, radius int) (int, bool) {
	lo := max(1, center-radius)
	hi := min(len(lines), center+radius)
	for line := lo; line <= hi; line++ {
		if line == center {
			continue
		}
		if lines[line-1] == expected {
			return line, true
		}
	}
	return 0, false
}

func place(issue domain.Issue, line, shift int) domain.Placement {
	if shift != 0 && issue.LineRange != nil {
		shifted := domain.LineRange{From: issue.LineRange.From + shift, To: issue.LineRange.To + shift}
		issue.LineRange = &shifted
	}
	return domain.Placement{Issue: issue, Line: line, Shift: shift}
}
