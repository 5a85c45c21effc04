// Package golangci decodes the JSON report written by golangci-lint.
package golangci

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/zerr"
)

// Parser implements ports.ReportParser for golangci-lint JSON output.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes stdout of a golangci-lint run.
// Lines before the first one starting with '{' are skipped; golangci-lint
// prints deprecation warnings there.
func (p *Parser) Parse(stdout []byte) (*domain.Report, error) {
	doc := skipPreamble(stdout)
	if len(bytes.TrimSpace(doc)) == 0 {
		return nil, domain.ErrReportMissing
	}

	var report domain.Report
	if err := json.Unmarshal(doc, &report); err != nil {
		return nil, errors.Join(domain.ErrReportParseFailed, zerr.Wrap(err, "decode golangci-lint report"))
	}
	return &report, nil
}

// skipPreamble drops every line before the JSON document. golangci-lint
// usually prints a single warning line, but one line per deprecated option
// is possible, and a JSON report never starts with anything but '{'.
func skipPreamble(out []byte) []byte {
	rest := out
	for len(rest) > 0 {
		if bytes.HasPrefix(bytes.TrimLeft(rest, " \t\r"), []byte("{")) {
			return rest
		}
		i := bytes.IndexByte(rest, '\n')
		if i < 0 {
			return nil
		}
		rest = rest[i+1:]
	}
	return nil
}

// ExitCodeOK reports whether code means the analysis completed.
// golangci-lint exits with 1 when issues were found.
func ExitCodeOK(code int) bool {
	return code == 0 || code == 1
}

// EnabledLinters returns the names of the linters that took part in the run.
func EnabledLinters(linters []domain.LinterInfo) []string {
	if len(linters) == 0 {
		return nil
	}
	names := make([]string, 0, len(linters))
	for _, l := range linters {
		if l.Enabled {
			names = append(names, l.Name)
		}
	}
	return names
}
