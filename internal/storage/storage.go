// Package storage is the local key-value store the cart and the session
// live in. It plays the role browser localStorage plays for the web client:
// string keys, string values, no transactions.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable means there is no usable storage backend in this context.
	ErrUnavailable = errors.New("storage: not available")
	// ErrQuotaExceeded is reported by backends with a size limit.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Store is the capability the cart and session helpers are built on.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Ping reports whether the backend can currently be read and written.
	Ping(ctx context.Context) error
	Close() error
}

// WriteError wraps a failed Set or Remove.
type WriteError struct {
	Op  string
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Detect is the capability check. It is meant to be called once at startup
// and its result handed to the components that use the store.
func Detect(ctx context.Context, s Store) bool {
	if s == nil {
		return false
	}
	return s.Ping(ctx) == nil
}
