package services

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"college-chatbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func seededLogs() *memoryQueryLogs {
	logs := &memoryQueryLogs{}
	minute := 0
	add := func(query, division string, answered bool, times int) {
		for i := 0; i < times; i++ {
			logs.entries = append(logs.entries, logEntry(query, division, answered, minute))
			minute++
		}
	}
	add("exam date", "1", true, 4)
	add("library hours", "1", false, 3)
	add("fees", "1", true, 2)
	add("hostel", "1", false, 1)
	add("canteen", "1", false, 1)
	add("parking", "1", false, 1)
	add("exam date", "2", true, 9)
	for i := 0; i < 12; i++ {
		add(fmt.Sprintf("unknown %02d", i), "3", false, 1)
	}
	return logs
}

func TestSummary(t *testing.T) {
	summary, err := NewAnalyticsService(seededLogs()).Summary(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.TotalQueries)
	require.Len(t, summary.TopQueries, 5)
	assert.Equal(t, models.QueryCount{Query: "exam date", Count: 4}, summary.TopQueries[0])
	assert.Equal(t, models.QueryCount{Query: "library hours", Count: 3}, summary.TopQueries[1])
	assert.Equal(t, models.QueryCount{Query: "fees", Count: 2}, summary.TopQueries[2])

	require.Len(t, summary.UnansweredQueries, 6)
	assert.Equal(t, "parking", summary.UnansweredQueries[0].Query)
	for _, q := range summary.UnansweredQueries {
		assert.False(t, q.Answered)
		assert.Equal(t, "1", q.Division)
	}
}

func TestSummary_CapsUnanswered(t *testing.T) {
	summary, err := NewAnalyticsService(seededLogs()).Summary(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, int64(12), summary.TotalQueries)
	require.Len(t, summary.UnansweredQueries, 10)
	assert.Equal(t, "unknown 11", summary.UnansweredQueries[0].Query)
}

func TestSummary_EmptyDivision(t *testing.T) {
	summary, err := NewAnalyticsService(&memoryQueryLogs{}).Summary(context.Background(), "4")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalQueries)
	assert.NotNil(t, summary.TopQueries)
	assert.NotNil(t, summary.UnansweredQueries)
}

func TestClear_OnlyTouchesDivision(t *testing.T) {
	logs := seededLogs()
	svc := NewAnalyticsService(logs)

	deleted, err := svc.Clear(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)

	summary, err := svc.Summary(context.Background(), "1")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalQueries)

	summary, err = svc.Summary(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, int64(9), summary.TotalQueries)
}

func TestExportExcel(t *testing.T) {
	logs := &memoryQueryLogs{entries: []models.QueryLog{
		logEntry("exam date", "1", true, 0),
		logEntry("library hours", "1", false, 5),
		logEntry("other division", "2", true, 1),
	}}

	data, err := NewAnalyticsService(logs).ExportExcel(context.Background(), "1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{QueryLogSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(QueryLogSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Query", "Answer", "Answered", "Created At"}, rows[0])
	assert.Equal(t, "library hours", rows[1][0])
	assert.Equal(t, "FALSE", rows[1][2])
	assert.Equal(t, "exam date", rows[2][0])
	assert.Equal(t, "2024-05-01 09:00:00", rows[2][3])

	total, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "query-log-division-1.xlsx", ExportFileName("1"))
	assert.Equal(t, "query-log-division-___etc.xlsx", ExportFileName("../etc"))
}
