// Package storage persists named JSON snapshots of storefront state.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: namespace not found")

// Storage is a key/value store for serialized state, one document per namespace.
type Storage interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, data []byte) error
	Delete(ctx context.Context, namespace string) error
}
