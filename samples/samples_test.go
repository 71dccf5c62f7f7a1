package samples

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	set := Default()
	require.Len(t, set, 5)

	names := make([]string, len(set))
	for i, s := range set {
		names[i] = s.Name
		assert.True(t, json.Valid([]byte(s.A)), "sample %q has invalid JSON", s.Name)
		assert.NotEmpty(t, s.B)
	}
	assert.Equal(t, []string{
		"Simple Object",
		"Nested Object",
		"Array of Objects",
		"API Response (Users)",
		"Config File",
	}, names)
}

func TestDefault_ReturnsCopy(t *testing.T) {
	t.Parallel()
	set := Default()
	set[0].Name = "changed"
	assert.Equal(t, "Simple Object", Default()[0].Name)
}

func TestParse(t *testing.T) {
	t.Parallel()
	data := []byte(`
samples:
  - name: Simple Object
    json: '{"name":"John","age":30}'
    toon: "name: John\nage: 30"
  - name: Derived
    json: '{"id":1}'
`)
	set, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "Simple Object", set[0].Name)
	assert.Equal(t, "name: John\nage: 30", set[0].B)
	assert.Equal(t, `{"id":1}`, set[1].A)
	assert.Contains(t, set[1].B, "id")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"not yaml":       "samples: [",
		"empty":          "samples: []",
		"missing name":   "samples:\n  - json: '{}'\n",
		"missing json":   "samples:\n  - name: x\n",
		"invalid json":   "samples:\n  - name: x\n    json: '{nope'\n",
		"duplicate name": "samples:\n  - name: x\n    json: '{}'\n  - name: x\n    json: '[]'\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidSampleFile)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.yaml")

	data, err := Marshal(Default())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), set)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeriveTOON(t *testing.T) {
	t.Parallel()
	out, err := DeriveTOON(`{"name":"John","city":"NYC"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "John")
	assert.Contains(t, out, "NYC")
	assert.NotContains(t, out, `"name"`)

	_, err = DeriveTOON("{")
	assert.Error(t, err)
}
