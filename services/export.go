package services

import (
	"context"
	"fmt"
	"strings"

	"college-chatbot/internal/logger"

	"github.com/xuri/excelize/v2"
)

const (
	QueryLogSheet   = "Query Log"
	SummarySheet    = "Summary"
	exportTimestamp = "2006-01-02 15:04:05"
)

var queryLogHeaders = []string{"Query", "Answer", "Answered", "Created At"}

// ExportExcel renders the division's whole query log as an xlsx workbook, newest
// entries first, with a second sheet of totals.
func (s *AnalyticsService) ExportExcel(ctx context.Context, division string) ([]byte, error) {
	division = strings.TrimSpace(division)

	entries, err := s.logs.ListByDivision(ctx, division)
	if err != nil {
		return nil, fmt.Errorf("list query logs: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close export workbook", "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), QueryLogSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range queryLogHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(QueryLogSheet, cell, header)
	}

	answered := 0
	for i, entry := range entries {
		row := i + 2
		f.SetCellValue(QueryLogSheet, fmt.Sprintf("A%d", row), entry.Query)
		f.SetCellValue(QueryLogSheet, fmt.Sprintf("B%d", row), entry.Answer)
		f.SetCellValue(QueryLogSheet, fmt.Sprintf("C%d", row), entry.Answered)
		f.SetCellValue(QueryLogSheet, fmt.Sprintf("D%d", row), entry.CreatedAt.UTC().Format(exportTimestamp))
		if entry.Answered {
			answered++
		}
	}

	f.SetColWidth(QueryLogSheet, "A", "A", 40)
	f.SetColWidth(QueryLogSheet, "B", "B", 80)
	f.SetColWidth(QueryLogSheet, "C", "D", 20)

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Division", division},
		{"Total Queries", len(entries)},
		{"Answered", answered},
		{"Unanswered", len(entries) - answered},
	}
	for i, row := range summary {
		f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName is the download name for a division's export.
func ExportFileName(division string) string {
	return fmt.Sprintf("query-log-division-%s.xlsx", sanitizeFileSegment(division))
}

func sanitizeFileSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}

