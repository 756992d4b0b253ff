package storage

import (
	"context"
	"io"
)

// PhotoStore persists uploaded photos under a deterministic name. The name is
// derived from the resource id, so a re-upload for the same resource
// overwrites the previous object (last write wins).
type PhotoStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
}
