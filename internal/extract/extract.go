// Package extract converts uploaded resume documents into plain text.
// It is a boundary adapter: the core only ever sees the extracted text
// or an ExtractionError.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/jonathan/career-assistant/internal/types"
)

// Format is the declared format of an uploaded document.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// ParseFormat maps a file extension or format label onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimPrefix(s, "."))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatDOCX:
		return FormatDOCX, nil
	case FormatTXT:
		return FormatTXT, nil
	}
	return "", fmt.Errorf("unsupported document format %q", s)
}

// ExtractionError reports that a document could not be converted to
// plain text. The user is asked to re-upload or paste text instead.
type ExtractionError struct {
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s document: %v", e.Format, e.Cause)
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *ExtractionError) Stage() types.Stage { return types.StageBuild }

// Extract converts document bytes of the declared format into plain
// text. Empty extracted text is an error: a resume with no recoverable
// text is useless downstream.
func Extract(data []byte, format Format) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT:
		text = string(data)
	default:
		return "", &ExtractionError{Format: format, Cause: fmt.Errorf("unsupported format")}
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Cause: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ExtractionError{Format: format, Cause: fmt.Errorf("document contains no text")}
	}
	return text, nil
}

// extractPDF pulls the plain-text stream out of a PDF.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return buf.String(), nil
}
