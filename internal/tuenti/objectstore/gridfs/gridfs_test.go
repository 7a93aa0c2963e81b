package gridfs_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/gridfs"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupMongo starts a throwaway MongoDB and returns its connection URI.
func setupMongo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	uri, err := container.PortEndpoint(ctx, "27017/tcp", "mongodb")
	require.NoError(t, err)
	return uri
}

func TestGridFSStore(t *testing.T) {
	uri := setupMongo(t)
	ctx := context.Background()

	st, err := gridfs.Connect(ctx, gridfs.Config{URI: uri, Database: "tuenti_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(ctx) })
	require.NoError(t, st.Ping(ctx))

	t.Run("round trip", func(t *testing.T) {
		n, err := st.Put(ctx, "media/owner/a.png", "image/png", strings.NewReader("png bytes"))
		require.NoError(t, err)
		require.EqualValues(t, 9, n)

		rc, err := st.Open(ctx, "media/owner/a.png")
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		require.Equal(t, "png bytes", string(b))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := st.Open(ctx, "media/owner/missing.png")
		require.ErrorIs(t, err, objectstore.ErrNotFound)
		require.ErrorIs(t, st.Delete(ctx, "media/owner/missing.png"), objectstore.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := st.Put(ctx, "media/owner/b.png", "image/png", strings.NewReader("b"))
		require.NoError(t, err)
		require.NoError(t, st.Delete(ctx, "media/owner/b.png"))
		_, err = st.Open(ctx, "media/owner/b.png")
		require.ErrorIs(t, err, objectstore.ErrNotFound)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := st.Put(ctx, "../b.png", "image/png", strings.NewReader("b"))
		require.ErrorIs(t, err, objectstore.ErrInvalidKey)
	})
}
