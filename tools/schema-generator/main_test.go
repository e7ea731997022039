package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "definitions")

	path, err := generate(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "familiar.schema.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "properties")
	assert.Contains(t, string(data), "prompt_char")
}
