package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hands.txt")
	require.NoError(t, os.WriteFile(path, []byte("PokerStars Hand #1: Hold'em €0.05"), 0o644))

	text, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PokerStars Hand #1: Hold'em €0.05", text)
}

func TestReadTextFileLatin1Fallback(t *testing.T) {
	// 0xe9 is 'é' in latin-1 and invalid as a standalone UTF-8 byte
	path := filepath.Join(t.TempDir(), "hands.txt")
	require.NoError(t, os.WriteFile(path, []byte{'c', 'a', 'f', 0xe9}, 0o644))

	text, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "café", text)
}

func TestReadTextFileMissing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.phhs")
	require.NoError(t, WriteFileAtomic(path, []byte("variant = 'NT'\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "variant = 'NT'\n", string(data))

	// Overwrite keeps the newest content
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
