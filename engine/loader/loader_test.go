package loader

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"textures/baked.png": {Data: encodePNG(t, 4, 2)},
	}
	l := NewLoader(WithFS(fsys), WithLogger(quietLogger()))
	defer l.Close()

	f := l.Load("textures/baked.png")
	require.NotNil(t, f.Texture())
	require.NoError(t, f.Wait(waitCtx(t)))

	tex := f.Texture()
	assert.True(t, tex.Ready())
	w, h := tex.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, "textures/baked.png", tex.Name())
}

func TestLoadIsCached(t *testing.T) {
	fsys := fstest.MapFS{"a.png": {Data: encodePNG(t, 1, 1)}}
	l := NewLoader(WithFS(fsys), WithLogger(quietLogger()))
	defer l.Close()

	first := l.Load("a.png")
	second := l.Load("a.png")
	assert.Same(t, first.Texture(), second.Texture())
	assert.Equal(t, first, l.Get("a.png"))
	assert.Nil(t, l.Get("missing.png"))
}

func TestLoadMissingFileLeavesTextureEmpty(t *testing.T) {
	l := NewLoader(WithFS(fstest.MapFS{}), WithLogger(quietLogger()))
	defer l.Close()

	f := l.Load("nope.jpg")
	err := f.Wait(waitCtx(t))
	require.Error(t, err)
	assert.Equal(t, err, f.Err())
	assert.False(t, f.Texture().Ready())
}

func TestLoadCorruptImage(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("garbage")}}
	l := NewLoader(WithFS(fsys), WithLogger(quietLogger()))
	defer l.Close()

	f := l.Load("bad.png")
	assert.Error(t, f.Wait(waitCtx(t)))
	assert.False(t, f.Texture().Ready())
}

func TestLoadReaderWithMaxSize(t *testing.T) {
	l := NewLoader(WithMaxSize(8), WithWorkers(1), WithLogger(quietLogger()))
	defer l.Close()

	f := l.LoadReader("big", bytes.NewReader(encodePNG(t, 32, 16)))
	require.NoError(t, f.Wait(waitCtx(t)))
	w, h := f.Texture().Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)
}

func TestLoadAfterClose(t *testing.T) {
	l := NewLoader(WithLogger(quietLogger()))
	l.Close()

	f := l.Load("anything.png")
	select {
	case <-f.Done():
	default:
		t.Fatal("future should be finished")
	}
	assert.ErrorIs(t, f.Err(), ErrClosed)
	assert.Nil(t, l.Get("anything.png"))
}

func TestCloseWaitsForInFlightDecodes(t *testing.T) {
	l := NewLoader(WithLogger(quietLogger()))
	pr, pw := io.Pipe()
	f := l.LoadReader("slow", pr)

	closed := make(chan struct{})
	go func() {
		l.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned before the decode finished")
	case <-time.After(50 * time.Millisecond):
	}

	data := encodePNG(t, 2, 2)
	go func() {
		pw.Write(data)
		pw.Close()
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close did not return after the decode finished")
	}
	require.NoError(t, f.Err())
	assert.True(t, f.Texture().Ready())

	// Safe to call again.
	l.Close()
}

func TestWaitHonoursContext(t *testing.T) {
	f := newFuture(texture.New("pending"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Wait(ctx), context.Canceled)
	assert.NoError(t, f.Err())
}

func TestWithTexturePrepopulates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	tex := texture.FromImage("pre", img)
	l := NewLoader(WithTexture("pre", tex), WithLogger(quietLogger()))
	defer l.Close()

	f := l.Load("pre")
	assert.Same(t, tex, f.Texture())
	assert.NoError(t, f.Wait(waitCtx(t)))
}
