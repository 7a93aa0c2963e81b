// Package gridfs stores objects in a MongoDB GridFS bucket, using the object
// key as the GridFS filename.
package gridfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aussiebroadwan/tuenti/internal/tuenti/objectstore"
)

const DefaultBucket = "media_files"

type Config struct {
	URI      string
	Database string
	Bucket   string // defaults to DefaultBucket
}

type Store struct {
	client *mongo.Client
	bucket *gridfs.Bucket
}

var _ objectstore.Store = (*Store)(nil)

// Connect dials MongoDB and opens the bucket.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	bucket, err := gridfs.NewBucket(client.Database(cfg.Database), options.GridFSBucket().SetName(cfg.Bucket))
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}

	return &Store{client: client, bucket: bucket}, nil
}

func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	key, err := objectstore.CleanKey(key)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	metadata := bson.M{
		"content_type": contentType,
		"uploaded_at":  time.Now().UTC(),
	}
	stream, err := s.bucket.OpenUploadStream(key, options.GridFSUpload().SetMetadata(metadata))
	if err != nil {
		return 0, fmt.Errorf("upload failed: %w", err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(dl)
	}

	n, err := io.Copy(stream, r)
	if err != nil {
		_ = stream.Abort()
		return 0, fmt.Errorf("object copy failed: %w", err)
	}
	if err := stream.Close(); err != nil {
		return 0, fmt.Errorf("upload failed: %w", err)
	}
	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	key, err := objectstore.CleanKey(key)
	if err != nil {
		return nil, err
	}

	stream, err := s.bucket.OpenDownloadStreamByName(key)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, objectstore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(dl)
	}
	return stream, nil
}

// Delete removes every revision stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	key, err := objectstore.CleanKey(key)
	if err != nil {
		return err
	}

	cur, err := s.bucket.FindContext(ctx, bson.M{"filename": key})
	if err != nil {
		return fmt.Errorf("find object: %w", err)
	}
	var files []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &files); err != nil {
		return fmt.Errorf("find object: %w", err)
	}
	if len(files) == 0 {
		return objectstore.ErrNotFound
	}

	for _, f := range files {
		if err := s.bucket.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			return fmt.Errorf("delete object: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
