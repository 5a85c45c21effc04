package ports

import "go.trai.ch/linger/internal/core/domain"

// ReportParser decodes the tool's stdout into a report.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type ReportParser interface {
	Parse(stdout []byte) (*domain.Report, error)
}
