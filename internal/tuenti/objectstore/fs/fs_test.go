package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/fs"
	"github.com/stretchr/testify/require"
)

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	st, err := fs.NewStore(root)
	require.NoError(t, err)

	n, err := st.Put(ctx, "media/owner/one.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	require.EqualValues(t, 6, n)

	_, err = os.Stat(filepath.Join(root, "media", "owner", "one.png"))
	require.NoError(t, err)

	rc, err := st.Open(ctx, "media/owner/one.png")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "pixels", string(b))

	require.NoError(t, st.Delete(ctx, "media/owner/one.png"))
	_, err = st.Open(ctx, "media/owner/one.png")
	require.ErrorIs(t, err, objectstore.ErrNotFound)
	require.ErrorIs(t, st.Delete(ctx, "media/owner/one.png"), objectstore.ErrNotFound)
}

func TestRejectsEscapingKeys(t *testing.T) {
	st, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = st.Put(context.Background(), "../outside", "", strings.NewReader("x"))
	require.ErrorIs(t, err, objectstore.ErrInvalidKey)
}

func TestPutHonoursCancellation(t *testing.T) {
	st, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Put(ctx, "media/x", "", strings.NewReader("x"))
	require.ErrorIs(t, err, context.Canceled)

	_, err = st.Open(context.Background(), "media/x")
	require.ErrorIs(t, err, objectstore.ErrNotFound)
}
