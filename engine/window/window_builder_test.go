package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720, minWidth: 320, minHeight: 240}
	for _, opt := range []WindowBuilderOption{
		WithTitle("shadows"),
		WithSize(800, 0),
		WithMinSize(0, 100),
		WithMaxSize(1920, -1),
	} {
		opt(w)
	}

	assert.Equal(t, "shadows", w.title)
	assert.Equal(t, 800, w.width)
	assert.Equal(t, 720, w.height, "non-positive size keeps the default")
	assert.Equal(t, sizeUnlimited, w.minWidth)
	assert.Equal(t, 100, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, sizeUnlimited, w.maxHeight)
}
