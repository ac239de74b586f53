package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	n, err := store.SaveStream("CSC301/m1/slides.pdf", strings.NewReader("osi layers"))
	require.NoError(t, err)
	require.Equal(t, int64(10), n)

	f, err := store.Open("CSC301/m1/slides.pdf")
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "osi layers", string(body))

	require.NoError(t, store.Delete("CSC301/m1/slides.pdf"))
	require.NoError(t, store.Delete("CSC301/m1/slides.pdf"))
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.SaveStream("../outside.txt", strings.NewReader("x"))
	require.Error(t, err)
	_, err = store.SaveStream("CSC301/../../outside.txt", strings.NewReader("x"))
	require.Error(t, err)
	_, err = store.Open("/etc/passwd")
	require.Error(t, err)
}
