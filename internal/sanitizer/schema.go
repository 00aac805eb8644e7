package sanitizer

import (
	_ "embed"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed scores.schema.json
var scoresSchemaJSON string

var scoresSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(scoresSchemaJSON))
})

// validEnvelope reports whether doc is an object carrying a scores array.
// Individual score objects are checked one by one later so that a single bad
// element does not discard the whole response.
func validEnvelope(doc string) bool {
	schema, err := scoresSchema()
	if err != nil {
		return false
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return false
	}

	return result.Valid()
}
