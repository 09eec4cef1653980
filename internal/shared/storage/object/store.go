package object

import (
	"context"
	"io"
)

// ObjectStore is the contract with the object storage provider: it accepts a
// binary payload plus a destination folder and returns a durable retrieval
// URL.
type ObjectStore interface {
	Save(ctx context.Context, folder string, fileName string, r io.Reader) (url string, sizeBytes int64, mimeType string, err error)
}
