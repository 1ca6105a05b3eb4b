package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
)

// ErrClosed is reported by futures requested after the loader was closed.
var ErrClosed = errors.New("loader: closed")

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger  *slog.Logger
	fsys    fs.FS
	maxSize int
	workers int

	pool     worker.DynamicWorkerPool
	inFlight sync.WaitGroup
	nextID   int
	closed   bool

	cache map[string]*future
}

// Loader decodes textures in the background. Load returns immediately with a
// Future whose texture is empty until decoding completes, so rendering can start
// before images arrive. Results are cached by path.
type Loader interface {
	// Load starts decoding the image at path, or returns the cached future for it.
	//
	// Parameters:
	//   - path: the image path, resolved against the configured filesystem
	//
	// Returns:
	//   - Future: the pending texture
	Load(path string) Future

	// LoadReader decodes an image from r under the given cache name. The reader is
	// consumed on a worker goroutine; callers must not use it afterwards.
	//
	// Parameters:
	//   - name: the cache key and texture name
	//   - r: the encoded image
	//
	// Returns:
	//   - Future: the pending texture
	LoadReader(name string, r io.Reader) Future

	// Get returns a previously requested future, or nil.
	//
	// Parameters:
	//   - name: the path or name passed to Load/LoadReader
	//
	// Returns:
	//   - Future: the cached future or nil
	Get(name string) Future

	// Close rejects further loads, waits for in-flight decodes to finish and stops
	// the decode workers. Safe to call more than once.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a texture Loader. By default paths are opened from the OS
// filesystem with two decode workers and no size limit.
//
// Parameters:
//   - options: functional options to configure the Loader
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		logger:  slog.Default(),
		workers: 2,
		cache:   make(map[string]*future),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *loader) Load(path string) Future {
	return l.submit(path, func() (io.ReadCloser, error) {
		if l.fsys != nil {
			return l.fsys.Open(path)
		}
		return os.Open(path)
	})
}

func (l *loader) LoadReader(name string, r io.Reader) Future {
	return l.submit(name, func() (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	})
}

func (l *loader) Get(name string) Future {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if f, ok := l.cache[name]; ok {
		return f
	}
	return nil
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.inFlight.Wait()
	l.pool.Stop()
}

// submit returns the cached future for name or queues a decode task for it.
func (l *loader) submit(name string, open func() (io.ReadCloser, error)) Future {
	l.mu.Lock()
	if f, ok := l.cache[name]; ok {
		l.mu.Unlock()
		return f
	}
	f := newFuture(texture.New(name))
	if l.closed {
		l.mu.Unlock()
		f.finish(ErrClosed)
		return f
	}
	l.cache[name] = f
	id := l.nextID
	l.nextID++
	l.inFlight.Add(1)
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer l.inFlight.Done()
			err := l.decode(f, open)
			if err != nil {
				l.logger.Warn("texture load failed", slog.String("texture", name), slog.Any("error", err))
			} else {
				w, h := f.tex.Size()
				l.logger.Debug("texture loaded", slog.String("texture", name), slog.Int("width", w), slog.Int("height", h))
			}
			f.finish(err)
			return nil, err
		},
	})
	return f
}

// decode reads and publishes the image into the future's texture.
func (l *loader) decode(f *future, open func() (io.ReadCloser, error)) error {
	rc, err := open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.tex.Name(), err)
	}
	defer rc.Close()

	img, _, err := texture.Decode(rc)
	if err != nil {
		return fmt.Errorf("%s: %w", f.tex.Name(), err)
	}
	f.tex.SetImage(texture.ToRGBA(img, l.maxSize))
	return nil
}
