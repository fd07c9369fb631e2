package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
)

// Upload is a file received from a client.
type Upload struct {
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// putUpload stores u under a new key below prefix and returns the key.
func putUpload(ctx context.Context, store storage.ObjectStore, prefix string, u *Upload) (string, error) {
	key := storage.NewKey(prefix, u.ContentType)
	if err := store.Put(ctx, key, u.Body, u.Size, u.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

// removeObjects deletes stored objects whose rows are already gone. Failures
// are logged; the rows cannot be brought back at this point.
func removeObjects(ctx context.Context, store storage.ObjectStore, logger logging.Logger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			logger.Warn(ctx, "object delete failed", "key", key, "error", err)
		}
	}
}
