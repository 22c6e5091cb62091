package watch

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepestCommonAncestorEmpty(t *testing.T) {
	assert.Equal(t, ".", deepestCommonAncestor(nil))
}

func TestDeepestCommonAncestorSingleFile(t *testing.T) {
	assert.Equal(t, "/repo/src", deepestCommonAncestor([]string{"/repo/src/main.d"}))
}

func TestDeepestCommonAncestorSiblingDirs(t *testing.T) {
	got := deepestCommonAncestor([]string{"/repo/src/a/x.d", "/repo/src/b/y.d"})
	assert.Equal(t, "/repo/src", got)
}

func TestDeepestCommonAncestorNestedDirs(t *testing.T) {
	got := deepestCommonAncestor([]string{"/repo/src/a/x.d", "/repo/src/a/deep/y.d"})
	assert.Equal(t, "/repo/src/a", got)
}

func TestDeepestCommonAncestorDivergentRoots(t *testing.T) {
	got := deepestCommonAncestor([]string{"/repo/x.d", "/other/y.d"})
	assert.Equal(t, "/", got)
}

func TestNewDefaultsToPerFileGranularityOnLinux(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, perFile, w.granularity)
}

func TestReadChangesDrainsAndClears(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	w.recordChange("/repo/src/main.d")
	w.recordChange("/repo/src/lib.d")

	changed := w.ReadChanges()
	assert.ElementsMatch(t, []string{"/repo/src/main.d", "/repo/src/lib.d"}, changed)
	assert.Empty(t, w.ReadChanges(), "a second read before any new change drains nothing")
}

func TestAddFilePerFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/watched.d"
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.AddFile(path))
	require.NoError(t, w.AddFile(path), "re-adding an already-watched file is a no-op, not an error")
	assert.True(t, w.watched[path])
}
