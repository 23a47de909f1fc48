package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputSizeKB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))

	kb, err := outputSizeKB(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, kb)
}

func TestOutputSizeKBMissingFile(t *testing.T) {
	_, err := outputSizeKB(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
