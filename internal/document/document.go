// Package document loads plain-text job descriptions and resumes.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/unicode/norm"
)

// MaxSize is the largest document accepted, in bytes.
const MaxSize = 10 << 20

var (
	// ErrUnsupported is returned for file types without a text extractor.
	ErrUnsupported = errors.New("unsupported document type")
	ErrEmpty       = errors.New("document is empty")
	ErrTooLarge    = fmt.Errorf("document exceeds %d bytes", MaxSize)

	supported = map[string]struct{}{
		".txt":  {},
		".text": {},
		".md":   {},
	}

	blankRuns = regexp.MustCompile(`\n{3,}`)
)

// Document is a loaded text document.
type Document struct {
	// Name is the base file name, used for display and name fallbacks.
	Name string
	Path string
	Text string
	// Err is set when the document could not be loaded; Text is empty then.
	Err error
}

// Failed reports whether the document could not be loaded.
func (d Document) Failed() bool { return d.Err != nil }

// Load reads and normalizes the document at path.
func Load(path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supported[ext]; !ok {
		return Document{}, fmt.Errorf("load %s: %w: %q", path, ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > MaxSize {
		return Document{}, fmt.Errorf("load %s: %w", path, ErrTooLarge)
	}

	doc, err := FromText(filepath.Base(path), data)
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	doc.Path = path

	return doc, nil
}

// LoadAll loads every path in order. A path that cannot be loaded yields a
// document with Err set, so one bad file never hides the others. The returned
// error aggregates every load failure and is nil when all paths loaded.
func LoadAll(paths []string) ([]Document, error) {
	docs := make([]Document, 0, len(paths))
	var errs *multierror.Error
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			doc = Document{Name: filepath.Base(path), Path: path, Err: err}
			errs = multierror.Append(errs, err)
		}
		docs = append(docs, doc)
	}
	return docs, errs.ErrorOrNil()
}

// FromText builds a document from in-memory content.
func FromText(name string, data []byte) (Document, error) {
	text := Normalize(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	if text == "" {
		return Document{}, ErrEmpty
	}
	return Document{Name: name, Text: text}, nil
}

// Normalize converts line endings to LF, applies NFKC, drops control
// characters other than newlines and tabs, trims trailing whitespace on every
// line and collapses runs of blank lines.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFKC.String(text)
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	text = strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
