package ports

import "context"

// Port: managed blob storage addressed by bucket+path. The core never
// sees more of the store than "put this blob, get back a URL".
type ObjectStore interface {
	// Upload data under bucket/path and return its public URL.
	Put(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Remove(ctx context.Context, bucket, path string) error
}
