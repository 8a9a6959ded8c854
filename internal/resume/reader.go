// Package resume reads the operator's resume and cover documents,
// dispatching on file extension to an appropriate format parser.
package resume

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// ReadError reports a document that could not be read or parsed. These are
// resource errors: they abort a run before any browsing starts.
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("read error for %s: %s", e.Path, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// ReadDocument extracts the plain text of a document. PDF and Word
// documents go through format parsers; everything else is read as plain
// text.
func ReadDocument(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &ReadError{Path: path, Message: "file not found", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".docx", ".doc":
		return readDocx(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to read file", Cause: err}
		}
		return string(data), nil
	}
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	reader, err := r.GetPlainText()
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to extract PDF text", Cause: err}
	}
	if _, err := io.Copy(&sb, reader); err != nil {
		return "", &ReadError{Path: path, Message: "failed to read PDF text", Cause: err}
	}
	return sb.String(), nil
}

func readDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to open document", Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to stat document", Cause: err}
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", &ReadError{Path: path, Message: "failed to parse Word document", Cause: err}
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch item.(type) {
		case *docx.Paragraph, *docx.Table:
			fmt.Fprintln(&sb, item)
		}
	}
	return sb.String(), nil
}
