package assessment

import "context"

// Repository port for the storage engine. Save assigns the record ID.
type Repository interface {
	Save(ctx context.Context, a *Assessment) error
	ListAll(ctx context.Context) ([]*Assessment, error)
}

// ImageStore port for the blob sink. Store writes the uploaded bytes
// under key and returns a stable, retrievable URL. Keys are unique per
// request; implementations must never overwrite unrelated uploads.
type ImageStore interface {
	Store(ctx context.Context, key string, data []byte) (string, error)
}
