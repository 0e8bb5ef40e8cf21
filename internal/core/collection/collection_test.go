package collection

import (
	"encoding/json"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_DecodeAndSources(t *testing.T) {
	doc := `{"mods": [
		{"source": {"modId": 107, "fileId": 1135}},
		{"source": {"modId": 3522, "fileId": 18292}}
	]}`

	var file File
	require.NoError(t, json.Unmarshal([]byte(doc), &file))
	require.NoError(t, file.Validate())

	sources := file.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, ModSource{ModID: 107, FileID: 1135}, sources[0])
	assert.Equal(t, ModSource{ModID: 3522, FileID: 18292}, sources[1])
}

func TestFile_Validate(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{
			name: "valid",
			doc:  `{"mods": [{"source": {"modId": 1, "fileId": 2}}]}`,
		},
		{
			name:       "empty mods array",
			doc:        `{"mods": []}`,
			wantFields: []string{"mods"},
		},
		{
			name:       "missing mods key",
			doc:        `{}`,
			wantFields: []string{"mods"},
		},
		{
			name:       "missing fileId",
			doc:        `{"mods": [{"source": {"modId": 1}}]}`,
			wantFields: []string{"mods[0].source.fileId"},
		},
		{
			name:       "missing modId",
			doc:        `{"mods": [{"source": {"fileId": 2}}]}`,
			wantFields: []string{"mods[0].source.modId"},
		},
		{
			name: "one error per offending entry",
			doc: `{"mods": [
				{"source": {"modId": 1, "fileId": 2}},
				{"source": {}},
				{"source": {"modId": 3}}
			]}`,
			wantFields: []string{
				"mods[1].source.modId",
				"mods[1].source.fileId",
				"mods[2].source.fileId",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var file File
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &file))

			err := file.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, len(tt.wantFields))
			for i, field := range tt.wantFields {
				assert.Equal(t, field, fieldErrs[i].Field)
			}
		})
	}
}

func TestFile_ZeroIdentifiersAreValid(t *testing.T) {
	// Zero is a present value, not an absent one.
	doc := `{"mods": [{"source": {"modId": 0, "fileId": 0}}]}`

	var file File
	require.NoError(t, json.Unmarshal([]byte(doc), &file))
	require.NoError(t, file.Validate())

	assert.Equal(t, "0:0", file.Sources()[0].Key())
}

func TestModSource_Key(t *testing.T) {
	assert.Equal(t, "107:1135", ModSource{ModID: 107, FileID: 1135}.Key())
	assert.Equal(t, "107:1135", ModSource{ModID: 107, FileID: 1135}.String())
}
