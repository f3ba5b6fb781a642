// Package metadata persists small client-local key/value items, such as the
// admin bearer token, in the client's sqlite file.
package metadata

import (
	"context"
)

// Repository is a string key/value store. Get returns common.ErrorNotFound
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
