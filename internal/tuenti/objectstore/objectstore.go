// Package objectstore holds uploaded media bytes. Metadata about each object
// lives in the relational store; this layer only maps keys to content.
package objectstore

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrNotFound   = errors.New("objectstore: not found")
	ErrInvalidKey = errors.New("objectstore: invalid key")
)

// Store puts and fetches objects by key. Keys are slash separated relative
// paths such as "media/<owner>/<id>.png".
type Store interface {
	// Put writes r under key and returns the number of bytes stored.
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)

	// Open returns the object content. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key. Deleting a missing key returns ErrNotFound.
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// CleanKey validates key and returns it in canonical form.
func CleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	clean := path.Clean(key)
	if clean != key || clean == "." || strings.HasPrefix(clean, "../") || clean == ".." {
		return "", ErrInvalidKey
	}
	return clean, nil
}
