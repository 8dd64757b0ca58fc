package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	s := New(t.TempDir(), false)

	require.NoError(t, s.Write("hello.txt", []byte("hello\r\nworld")))

	data, err := s.Read("hello.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\r\nworld", string(data))
}

func TestWriteOverwrites(t *testing.T) {
	s := New(t.TempDir(), false)

	require.NoError(t, s.Write("f", []byte("a much longer first version")))
	require.NoError(t, s.Write("f", []byte("short")))

	data, err := s.Read("f")
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestReadMissing(t *testing.T) {
	s := New(t.TempDir(), false)

	_, err := s.Read("never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadDirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	s := New(dir, false)

	_, err := s.Read("sub")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNestedName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))
	s := New(dir, false)

	require.NoError(t, s.Write("a/b.txt", []byte("nested")))

	data, err := os.ReadFile(filepath.Join(dir, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "nested", string(data))
}

func TestWriteIntoMissingDirectoryFails(t *testing.T) {
	s := New(t.TempDir(), false)

	err := s.Write("no/such/dir/file", []byte("x"))
	assert.Error(t, err)
}

func TestTraversalAllowedByDefault(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "base")
	require.NoError(t, os.Mkdir(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "outside"), []byte("secret"), 0o644))

	data, err := New(base, false).Read("../outside")
	require.NoError(t, err)
	assert.Equal(t, "secret", string(data))
}

func TestRejectTraversal(t *testing.T) {
	s := New(t.TempDir(), true)

	for _, name := range []string{"../outside", "a/../../b", "", "/etc/passwd"} {
		_, err := s.Read(name)
		assert.ErrorIs(t, err, ErrUnsafePath, "read %q", name)

		err = s.Write(name, []byte("x"))
		assert.ErrorIs(t, err, ErrUnsafePath, "write %q", name)
	}

	require.NoError(t, s.Write("safe.txt", []byte("ok")))
}

func TestDefaultDir(t *testing.T) {
	assert.Equal(t, ".", New("", false).Dir())
}
