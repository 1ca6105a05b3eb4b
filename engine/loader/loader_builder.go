package loader

import (
	"io/fs"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithFS is an option builder that resolves paths against fsys instead of the OS
// filesystem.
//
// Parameters:
//   - fsys: the filesystem to read from
//
// Returns:
//   - LoaderBuilderOption: a function that applies the filesystem option to a loader
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithWorkers is an option builder that sets the number of decode workers.
//
// Parameters:
//   - n: the worker count; values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithMaxSize is an option builder that downscales decoded images whose width or
// height exceeds size.
//
// Parameters:
//   - size: the largest allowed dimension, or 0 for no limit
//
// Returns:
//   - LoaderBuilderOption: a function that applies the size option to a loader
func WithMaxSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		l.maxSize = max(size, 0)
	}
}

// WithLogger sets the logger for load results.
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTexture is an option builder that pre-populates the cache with a ready
// texture under key.
//
// Parameters:
//   - key: the cache key
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex texture.Texture) LoaderBuilderOption {
	return func(l *loader) {
		f := newFuture(tex)
		f.finish(nil)
		l.cache[key] = f
	}
}
