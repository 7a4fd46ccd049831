// Package textextract converts uploaded documents into plain text for
// prompt building.
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Supported document MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTXT  = "text/plain"
)

var (
	// ErrUnsupportedType means the document's MIME type has no extractor.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrNoContent means extraction succeeded but yielded no usable text.
	ErrNoContent = errors.New("no text content could be extracted")
)

// SupportedType reports whether a MIME type can be extracted.
func SupportedType(mimeType string) bool {
	switch mimeType {
	case MimePDF, MimeDOCX, MimeTXT:
		return true
	}
	return false
}

// ExtractText reads the file at path and returns its plain text
// according to the declared MIME type. An empty result is an error:
// there is nothing to generate questions from.
func ExtractText(path, mimeType string) (string, error) {
	var (
		text string
		err  error
	)

	switch mimeType {
	case MimePDF:
		text, err = extractPDF(path)
	case MimeDOCX:
		text, err = extractDOCX(path)
	case MimeTXT:
		text, err = extractPlain(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrNoContent
	}
	return text, nil
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return string(data), nil
}
