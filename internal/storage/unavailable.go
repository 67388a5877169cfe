package storage

import "context"

// Unavailable stands for a context with no local storage at all.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) (string, error) { return "", ErrUnavailable }

func (Unavailable) Set(_ context.Context, key, _ string) error {
	return &WriteError{Op: "set", Key: key, Err: ErrUnavailable}
}

func (Unavailable) Remove(_ context.Context, key string) error {
	return &WriteError{Op: "remove", Key: key, Err: ErrUnavailable}
}

func (Unavailable) Ping(context.Context) error { return ErrUnavailable }

func (Unavailable) Close() error { return nil }
