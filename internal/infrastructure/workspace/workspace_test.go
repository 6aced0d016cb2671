package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsUniqueAndPrivate(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "nested", "root")
	m := NewManager(Config{Root: root})

	first, err := m.Create()
	require.NoError(t, err)
	second, err := m.Create()
	require.NoError(t, err)

	assert.NotEqual(t, first.Dir(), second.Dir())
	assert.Equal(t, root, filepath.Dir(first.Dir()))

	info, err := os.Stat(first.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestWriteInput(t *testing.T) {
	t.Parallel()

	ws, err := NewManager(Config{Root: t.TempDir()}).Create()
	require.NoError(t, err)
	defer ws.Destroy()

	path, err := ws.WriteInput("input.docx", []byte("PK\x03\x04"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ws.Dir(), "input.docx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), data)

	for _, name := range []string{"", ".", "..", "../escape.docx", "a/b.docx"} {
		_, err := ws.WriteInput(name, nil)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestFindByExtension(t *testing.T) {
	t.Parallel()

	ws, err := NewManager(Config{Root: t.TempDir()}).Create()
	require.NoError(t, err)
	defer ws.Destroy()

	for _, name := range []string{"input.docx", "b.PDF", "a.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(ws.Dir(), "dir.pdf"), 0o700))

	matches, err := ws.FindByExtension(".pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(ws.Dir(), "a.pdf"),
		filepath.Join(ws.Dir(), "b.PDF"),
	}, matches)

	none, err := ws.FindByExtension(".odt")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDestroyRemovesEverything(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws, err := NewManager(Config{Root: root}).Create()
	require.NoError(t, err)

	_, err = ws.WriteInput("input.docx", []byte("doc"))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(ws.Dir(), "profile", "user"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), "profile", "user", "registry.xcu"), []byte("x"), 0o600))

	require.NoError(t, ws.Destroy())
	require.NoError(t, ws.Destroy())

	_, err = os.Stat(ws.Dir())
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
