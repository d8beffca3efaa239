package port

import "context"

// EvidenceStore is the boundary contract to the binary storage service.
// The core hands over validated bytes and a deterministic destination key;
// the store returns a public reference for the stored object.
type EvidenceStore interface {
	Store(ctx context.Context, key string, data []byte, mimeType string) (string, error)
}
