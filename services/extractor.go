package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"college-chatbot/internal/logger"
	"college-chatbot/models"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyContent    = errors.New("file is empty or content could not be extracted")
)

const spreadsheetCellSeparator = " | "

// TextExtractor turns an uploaded file into the plain text stored as document content.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract dispatches on the declared MIME type. Output that is blank after trimming
// is reported as ErrEmptyContent.
func (e *TextExtractor) Extract(mimeType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch mimeType {
	case models.MIMETypePlainText:
		text, err = extractPlainText(data)
	case models.MIMETypeSpreadsheet:
		text, err = extractSpreadsheet(data)
	case models.MIMETypePDF:
		text, err = extractPDF(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}
	return text, nil
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
	}
	return string(data), nil
}

// extractSpreadsheet reads the first sheet; each non-empty row becomes one line.
func extractSpreadsheet(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close spreadsheet", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrEmptyContent
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var sb strings.Builder
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		sb.WriteString(strings.Join(row, spreadsheetCellSeparator))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(make(map[string]*pdf.Font))
		if err != nil {
			logger.Warn("failed to extract text from PDF page", "page", i, "error", err)
			continue
		}
		if i > 1 && sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
