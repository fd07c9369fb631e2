// Package storage keeps uploaded files (trip images, expense receipts) in an
// object store. The database only records the object key.
package storage

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
)

// ObjectStore stores objects by key and tells callers where to fetch them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

const (
	PrefixImages   = "images"
	PrefixReceipts = "receipts"
)

// imageExtensions maps the accepted image types to the extension their keys
// carry. The client's file name never reaches the key.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// NewKey returns a fresh key under prefix. The extension follows contentType;
// types outside the image set get none.
func NewKey(prefix, contentType string) string {
	return prefix + "/" + uuid.NewString() + imageExtensions[contentType]
}

// ContentTypeOfKey returns the image type a key was created for.
func ContentTypeOfKey(key string) (string, bool) {
	ext := path.Ext(key)
	for ct, e := range imageExtensions {
		if e == ext {
			return ct, true
		}
	}
	return "", false
}
