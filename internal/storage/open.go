package storage

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendRedis   = "redis"
	BackendBrowser = "browser"
	BackendNone    = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendSQLite, BackendMemory, BackendRedis, BackendBrowser, BackendNone}

type Options struct {
	Backend string
	// Path of the SQLite file.
	Path string
	// Quota of the memory backend in bytes, zero for unlimited.
	Quota   int
	Redis   RedisOptions
	Browser BrowserOptions
}

// Open builds the configured backend. It does not check the backend is
// reachable; that is Detect's job.
func Open(opts Options, logger *zap.Logger) (Store, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return NewSQLite(opts.Path, logger)
	case BackendMemory:
		return NewMemory(opts.Quota), nil
	case BackendRedis:
		return NewRedis(opts.Redis, logger)
	case BackendBrowser:
		return NewBrowser(opts.Browser, logger)
	case BackendNone:
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
