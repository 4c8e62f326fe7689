package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLinesCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "records.jsonl")
	file := NewJSONLFile(path, false)

	require.NoError(t, file.WriteLines([][]byte{[]byte(`{"a":1}`)}))
	assert.True(t, file.Exists())
}

func TestWriteLinesReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	file := NewJSONLFile(path, false)

	require.NoError(t, file.WriteLines([][]byte{
		[]byte("one"), []byte("two"), []byte("three"),
	}))
	require.NoError(t, file.WriteLines([][]byte{[]byte("only")}))

	lines, err := file.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("only")}, lines)
}

func TestReadLinesSkipsEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("one\n\ntwo\n"), 0o644))

	file := NewJSONLFile(path, false)
	lines, err := file.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, lines)
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	file := NewJSONLFile(path, true)

	require.NoError(t, file.WriteLines([][]byte{[]byte("one")}))
	require.NoError(t, file.WriteLines([][]byte{[]byte("two")}))

	lines, err := file.ReadLines()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("two")}, lines)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "records.jsonl", entries[0].Name())
}

func TestWriteLinesFailsWhenParentIsAFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	file := NewJSONLFile(filepath.Join(blocker, "records.jsonl"), false)
	assert.Error(t, file.WriteLines([][]byte{[]byte("one")}))
}

func TestEmptyWriteTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	file := NewJSONLFile(path, false)

	require.NoError(t, file.WriteLines([][]byte{[]byte("one")}))
	require.NoError(t, file.WriteLines(nil))

	lines, err := file.ReadLines()
	require.NoError(t, err)
	assert.Empty(t, lines)
}
