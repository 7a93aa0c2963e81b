package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/domain"
	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore/fs"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newMediaService(t *testing.T, env *testEnv) *MediaService {
	t.Helper()
	objects, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)
	return &MediaService{Store: env.store, Objects: objects, Now: env.clock.Now}
}

func TestMediaUpload(t *testing.T) {
	env := newTestEnv(t)
	svc := newMediaService(t, env)
	ctx := context.Background()
	ana := env.register(t, "ana").Account.ID

	data := pngBytes(t, 4, 3)
	res, err := svc.Upload(ctx, UploadRequest{
		OwnerID:  ana,
		Filename: "holiday.jpg",
		Body:     bytes.NewReader(data),
	})
	require.NoError(t, err)
	require.Nil(t, res.Post)

	m := res.Media
	require.Equal(t, "image/png", m.ContentType)
	require.Equal(t, "media/"+ana+"/"+m.ID+".png", m.ObjectKey)
	require.EqualValues(t, len(data), m.SizeBytes)
	require.Equal(t, 4, m.Width)
	require.Equal(t, 3, m.Height)

	got, rc, err := svc.Open(ctx, m.ID)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, data, b)
	require.Equal(t, m.ObjectKey, got.ObjectKey)

	t.Run("usable by its owner only", func(t *testing.T) {
		bea := env.register(t, "bea").Account.ID
		_, err := env.feed.CreatePost(ctx, bea, "stolen", m.ID)
		require.ErrorIs(t, err, ErrMediaNotOwned)

		item, err := env.feed.CreatePost(ctx, ana, "", m.ID)
		require.NoError(t, err)
		require.NotNil(t, item.Media)
		require.Equal(t, m.ID, item.Media.ID)
	})
}

func TestMediaUploadShare(t *testing.T) {
	env := newTestEnv(t)
	svc := newMediaService(t, env)
	ctx := context.Background()
	ana := env.register(t, "ana").Account.ID

	res, err := svc.Upload(ctx, UploadRequest{
		OwnerID: ana,
		Body:    bytes.NewReader(pngBytes(t, 1, 1)),
		Share:   true,
		Caption: " en la playa ",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Post)
	require.Equal(t, "en la playa", res.Post.Post.Content)
	require.Equal(t, res.Media.ID, res.Post.Media.ID)

	items, err := env.feed.LoadFeed(ctx, ana, FeedQuery{Filter: domain.FeedPhotos})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestMediaUploadRejections(t *testing.T) {
	env := newTestEnv(t)
	svc := newMediaService(t, env)
	svc.MaxBytes = 1024
	ctx := context.Background()
	ana := env.register(t, "ana").Account.ID

	_, err := svc.Upload(ctx, UploadRequest{OwnerID: ana, Body: strings.NewReader("")})
	require.ErrorIs(t, err, ErrMediaEmpty)

	_, err = svc.Upload(ctx, UploadRequest{OwnerID: ana, Filename: "x.png", Body: strings.NewReader("#!/bin/sh\necho hi\n")})
	require.ErrorIs(t, err, ErrMediaUnsupported)

	_, err = svc.Upload(ctx, UploadRequest{OwnerID: ana, Body: bytes.NewReader(make([]byte, 2048))})
	require.ErrorIs(t, err, ErrMediaTooLarge)

	_, _, err = svc.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrMediaNotFound)
}
