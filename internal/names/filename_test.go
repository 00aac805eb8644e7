package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFilename(t *testing.T) {
	cases := map[string]string{
		"maria_garcia.pdf":             "Maria Garcia",
		"/tmp/resumes/JOHN-o_neil.txt": "John O Neil",
		"wei  zhang.md":                "Wei Zhang",
		"resume_123.pdf":               "Resume 123",
		"ana-maria_lopez.md":           "Ana Maria Lopez",
		"li\twei.txt":                  "Li Wei",
		"":                             "",
	}

	for in, want := range cases {
		assert.Equal(t, want, FromFilename(in), in)
	}
}
