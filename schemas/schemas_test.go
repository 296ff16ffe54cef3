package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	names, err := fs.Glob(FS, "*.schema.json")
	require.NoError(t, err)
	require.Len(t, names, 8)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			data, err := fs.ReadFile(FS, name)
			require.NoError(t, err)

			var schemaObj map[string]any
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			id, _ := schemaObj["$id"].(string)
			assert.Equal(t, "https://teammatch.dev/schemas/"+name, id, "$id must match the file name for cross-file refs")
		})
	}
}
