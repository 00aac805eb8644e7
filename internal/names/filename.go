package names

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FromFilename derives a display name from a resume file name:
// "maria_garcia.pdf" becomes "Maria Garcia".
func FromFilename(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	// Casers keep state, so one is built per call.
	return cases.Title(language.English).String(strings.Join(words, " "))
}
