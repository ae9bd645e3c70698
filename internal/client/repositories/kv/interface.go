package kv

import "context"

// Store is a durable string-keyed byte store. Get returns (nil, nil) for a
// missing key and Delete of a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
