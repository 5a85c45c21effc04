package domain

// Position locates an issue inside a source file. Line and Column are 1-based;
// a Column of 0 means the issue covers the whole line.
type Position struct {
	Filename string `json:"Filename" msgpack:"filename"`
	Offset   int    `json:"Offset"   msgpack:"offset"`
	Line     int    `json:"Line"     msgpack:"line"`
	Column   int    `json:"Column"   msgpack:"column"`
}

// LineRange is the optional multi-line span of an issue.
type LineRange struct {
	From int `json:"From" msgpack:"from"`
	To   int `json:"To"   msgpack:"to"`
}

// InlineFix replaces part of a single line.
type InlineFix struct {
	StartCol  int    `json:"StartCol"  msgpack:"start_col"`
	Length    int    `json:"Length"    msgpack:"length"`
	NewString string `json:"NewString" msgpack:"new_string"`
}

// Replacement is the fix suggested by a linter, if any.
type Replacement struct {
	NeedOnlyDelete bool       `json:"NeedOnlyDelete" msgpack:"need_only_delete"`
	NewLines       []string   `json:"NewLines"       msgpack:"new_lines"`
	Inline         *InlineFix `json:"Inline"         msgpack:"inline"`
}

// Issue is a single diagnostic reported by the tool.
type Issue struct {
	FromLinter  string       `json:"FromLinter"  msgpack:"from_linter"`
	Text        string       `json:"Text"        msgpack:"text"`
	Severity    string       `json:"Severity"    msgpack:"severity"`
	Pos         Position     `json:"Pos"         msgpack:"pos"`
	SourceLines []string     `json:"SourceLines" msgpack:"source_lines"`
	LineRange   *LineRange   `json:"LineRange"   msgpack:"line_range"`
	Replacement *Replacement `json:"Replacement" msgpack:"replacement"`
}

// ExpectedSourceLine returns the literal text of the reported line at report time.
// Declaration-level diagnostics carry no source text; ok is false for those.
func (i *Issue) ExpectedSourceLine() (line string, ok bool) {
	if len(i.SourceLines) == 0 {
		return "", false
	}
	return i.SourceLines[0], true
}

// LinterInfo describes one linter known to the tool.
type LinterInfo struct {
	Name             string `json:"Name"             msgpack:"name"`
	Enabled          bool   `json:"Enabled"          msgpack:"enabled"`
	EnabledByDefault bool   `json:"EnabledByDefault" msgpack:"enabled_by_default"`
}

// ReportWarning is a non-fatal message emitted by the tool.
type ReportWarning struct {
	Tag  string `json:"Tag"`
	Text string `json:"Text"`
}

// ReportMeta is the trailing metadata block of the tool's report.
type ReportMeta struct {
	Linters  []LinterInfo    `json:"Linters"`
	Warnings []ReportWarning `json:"Warnings"`
	Error    string          `json:"Error"`
}

// Report is the decoded tool output.
type Report struct {
	Issues []Issue    `json:"Issues"`
	Report ReportMeta `json:"Report"`
}

// Placement is an issue surfaced at a line of the current buffer.
type Placement struct {
	Issue Issue
	// Line is the adjusted 1-based line in the current buffer.
	Line int
	// Shift is Line minus the originally reported line.
	Shift int
}
