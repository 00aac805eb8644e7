package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "maria_garcia.TXT", "\xef\xbb\xbfMaria Garcia  \r\nGo developer\r\n\r\n\r\n\r\nSkills:\tGo\t\r\n")

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "maria_garcia.TXT", doc.Name)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "Maria Garcia\nGo developer\n\nSkills:\tGo", doc.Text)
}

func TestLoadRejectsUnsupportedTypes(t *testing.T) {
	for _, name := range []string{"cv.pdf", "cv.docx", "cv"} {
		_, err := Load(writeFile(t, name, "content"))
		assert.ErrorIs(t, err, ErrUnsupported, name)
	}
}

func TestLoadRejectsEmptyDocument(t *testing.T) {
	_, err := Load(writeFile(t, "empty.md", " \n\t\n"))

	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadRejectsLargeDocument(t *testing.T) {
	_, err := Load(writeFile(t, "big.txt", strings.Repeat("a", MaxSize+1)))

	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAll(t *testing.T) {
	first := writeFile(t, "a.txt", "A")
	second := writeFile(t, "b.md", "B")

	docs, err := LoadAll([]string{first, second})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "b.md", docs[1].Name)
	assert.False(t, docs[1].Failed())
}

func TestLoadAllKeepsGoodDocumentsAlongsideFailures(t *testing.T) {
	good := writeFile(t, "maria.txt", "Maria Garcia\nGo developer")
	blank := writeFile(t, "blank.txt", "  \n")
	other := writeFile(t, "wei.md", "Wei Zhang")

	docs, err := LoadAll([]string{good, blank, "resume.pdf", other})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.ErrorIs(t, err, ErrUnsupported)

	require.Len(t, docs, 4)
	assert.False(t, docs[0].Failed())
	assert.Equal(t, "Maria Garcia\nGo developer", docs[0].Text)

	assert.Equal(t, "blank.txt", docs[1].Name)
	assert.Equal(t, blank, docs[1].Path)
	assert.ErrorIs(t, docs[1].Err, ErrEmpty)
	assert.Empty(t, docs[1].Text)

	assert.Equal(t, "resume.pdf", docs[2].Name)
	assert.ErrorIs(t, docs[2].Err, ErrUnsupported)

	assert.Equal(t, "Wei Zhang", docs[3].Text)
}

func TestNormalize(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"ligatures":      {in: "Certiﬁed  Kubernetes", want: "Certified  Kubernetes"},
		"control chars":  {in: "Go\x00 developer\x0c\npage 2", want: "Go developer\npage 2"},
		"old mac breaks": {in: "a\rb", want: "a\nb"},
		"blank runs":     {in: "a\n \n\t\n\nb", want: "a\n\nb"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}
