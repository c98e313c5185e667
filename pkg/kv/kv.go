// Package kv provides the durable key-value slot used by the cart store.
package kv

import "context"

// Slot is a single-writer key-value port. Get reports presence explicitly so
// an absent key is not an error.
type Slot interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
