package models

import "strings"

// ReportFormat enumerates supported export formats.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportType identifies which snapshot a report renders.
type ReportType string

const (
	ReportTypeRoster     ReportType = "roster"
	ReportTypeTranscript ReportType = "transcript"
)

// ParseReportFormat normalises raw into a ReportFormat.
func ParseReportFormat(raw string) (ReportFormat, bool) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case ReportFormatCSV, ReportFormatPDF:
		return f, true
	default:
		return "", false
	}
}

// ReportResult describes a stored report file.
type ReportResult struct {
	Type         ReportType   `json:"type"`
	Format       ReportFormat `json:"format"`
	RelativePath string       `json:"relative_path"`
	Location     string       `json:"location"`
	Rows         int          `json:"rows"`
}
