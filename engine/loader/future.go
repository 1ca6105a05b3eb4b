package loader

import (
	"context"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
)

// Future is a texture that may still be decoding.
type Future interface {
	// Texture returns the texture. It is usable immediately and becomes Ready once
	// decoding succeeds; on failure it stays empty.
	//
	// Returns:
	//   - texture.Texture: the texture
	Texture() texture.Texture

	// Done is closed when decoding finishes, successfully or not.
	//
	// Returns:
	//   - <-chan struct{}: the completion channel
	Done() <-chan struct{}

	// Wait blocks until decoding finishes or ctx is done.
	//
	// Parameters:
	//   - ctx: bounds the wait
	//
	// Returns:
	//   - error: the decode error, or ctx.Err() if the wait was cut short
	Wait(ctx context.Context) error

	// Err returns the decode error, or nil while pending or on success.
	//
	// Returns:
	//   - error: the decode error
	Err() error
}

type future struct {
	tex  texture.Texture
	done chan struct{}
	once sync.Once
	err  error
}

var _ Future = &future{}

func newFuture(tex texture.Texture) *future {
	return &future{tex: tex, done: make(chan struct{})}
}

func (f *future) finish(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

func (f *future) Texture() texture.Texture {
	return f.tex
}

func (f *future) Done() <-chan struct{} {
	return f.done
}

func (f *future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
