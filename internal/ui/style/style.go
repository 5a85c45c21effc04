// Package style provides shared UI styling primitives including brand colors
// and icons used by the logger and the analyze report.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)

// SeverityColor maps a linter severity to a brand color.
// Unknown and empty severities are reported as errors, the golangci-lint default.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case "warning":
		return Yellow
	case "info", "hint":
		return Slate
	default:
		return Red
	}
}
