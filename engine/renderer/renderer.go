package renderer

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadows/engine/light"
	"github.com/Carmen-Shannon/oxy-shadows/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadows/engine/window"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Overlay draws on top of a finished frame, after the scene and helpers.
type Overlay interface {
	// Draw paints onto the frame.
	//
	// Parameters:
	//   - dst: the frame, sized to the drawing buffer
	//   - pixelRatio: drawing buffer pixels per logical pixel
	Draw(dst *image.RGBA, pixelRatio float32)
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	pixelRatio    float32
	clearColor    [4]uint8
	shadowMap     ShadowMap
	overlays      []Overlay

	workers int
	pool    worker.DynamicWorkerPool
	taskID  int

	frame      *image.RGBA
	target     *target
	shadowTgt  *target
	shadowMaps map[uuid.UUID]*shadowMap

	// Per-frame scratch reused across frames.
	vertices  []clipVertex
	triangles []screenTriangle
	items     []drawItem
	lights    []light.Light

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
}

// Renderer draws a scene through a camera into an sRGB frame and hands the frame
// to its backend for display.
//
// Rendering is a CPU rasterizer: triangles are clipped, culled and scan converted
// in row bands on a worker pool, shaded per pixel with metal/roughness lighting and
// optional shadow maps, then camera helpers and overlays are drawn on top.
// Render must be called from the goroutine that owns the scene.
type Renderer interface {
	// Render draws one frame and presents it.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: an error if presenting the frame failed
	Render(s scene.Scene, cam camera.Camera) error

	// SetSize sets the logical output size. The drawing buffer is the logical size
	// scaled by the pixel ratio.
	//
	// Parameters:
	//   - width: logical width in pixels
	//   - height: logical height in pixels
	SetSize(width, height int)

	// Size returns the logical output size.
	//
	// Returns:
	//   - int: logical width
	//   - int: logical height
	Size() (int, int)

	// SetPixelRatio sets the drawing buffer pixels per logical pixel. Values that
	// are not positive are ignored.
	//
	// Parameters:
	//   - ratio: the pixel ratio
	SetPixelRatio(ratio float32)

	// PixelRatio returns the drawing buffer pixels per logical pixel.
	//
	// Returns:
	//   - float32: the pixel ratio
	PixelRatio() float32

	// DrawingBufferSize returns the frame size in pixels.
	//
	// Returns:
	//   - int: frame width
	//   - int: frame height
	DrawingBufferSize() (int, int)

	// ShadowMap returns the shadow settings, editable in place.
	//
	// Returns:
	//   - *ShadowMap: the shadow settings
	ShadowMap() *ShadowMap

	// Frame returns the most recently rendered frame, or nil before the first Render.
	// The image is reused by the next Render.
	//
	// Returns:
	//   - *image.RGBA: the last frame
	Frame() *image.RGBA

	// AddOverlay registers an overlay drawn after the scene on every frame.
	//
	// Parameters:
	//   - o: the overlay
	AddOverlay(o Overlay)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BackendType returns the backend frames are delivered to.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Close stops the raster workers and releases the backend.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type.
// BackendTypeWGPU requires a window and presents to its surface; BackendTypeSoftware
// keeps frames in memory and ignores the window. Defaults: 800x600, pixel ratio 1,
// black clear color, shadow map disabled with PCF filtering, one raster worker per CPU.
//
// Parameters:
//   - backendType: the type of backend to deliver frames to
//   - win: the window to present to (may be nil for BackendTypeSoftware)
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      slog.Default(),
		backendType: backendType,
		width:       800,
		height:      600,
		pixelRatio:  1,
		clearColor:  [4]uint8{0, 0, 0, 255},
		shadowMap:   ShadowMap{Type: ShadowMapPCF},
		workers:     runtime.NumCPU(),
		shadowMaps:  make(map[uuid.UUID]*shadowMap),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	r.target = newTarget(1, 1, true)
	r.shadowTgt = newTarget(1, 1, true)

	switch backendType {
	case BackendTypeWGPU:
		if win == nil {
			panic("renderer: the wgpu backend requires a window")
		}
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.presentMode)
	}
	r.logger.Debug("renderer created",
		slog.String("backend", backendType.String()),
		slog.Int("workers", r.workers),
		slog.Bool("shadowMap", r.shadowMap.Enabled),
	)
	return r
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width > 0 && height > 0 {
		r.width, r.height = width, height
	}
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio > 0 && !math32.IsInf(ratio, 0) {
		r.pixelRatio = ratio
	}
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferSize()
}

// bufferSize is the logical size scaled by the pixel ratio. Caller must hold the mutex.
func (r *renderer) bufferSize() (int, int) {
	w := int(math32.Floor(float32(r.width)*r.pixelRatio + 0.5))
	h := int(math32.Floor(float32(r.height)*r.pixelRatio + 0.5))
	return max(w, 1), max(h, 1)
}

func (r *renderer) ShadowMap() *ShadowMap {
	return &r.shadowMap
}

func (r *renderer) Frame() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

func (r *renderer) AddOverlay(o Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o != nil {
		r.overlays = append(r.overlays, o)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	if r.backend != nil {
		r.backend.SetPresentMode(mode)
	}
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pool != nil {
		r.pool.Stop()
		r.pool = nil
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pool == nil {
		return fmt.Errorf("render: renderer closed")
	}
	if s == nil || cam == nil {
		return fmt.Errorf("render: scene and camera are required")
	}

	w, h := r.bufferSize()
	if r.frame == nil || r.frame.Rect.Dx() != w || r.frame.Rect.Dy() != h {
		r.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	r.target.resize(w, h, true)

	r.lights = s.Lights()
	for _, l := range r.lights {
		if sh := l.Shadow(); sh != nil {
			sh.Follow(l)
		}
	}
	shadows := r.shadowMap.Enabled
	if shadows {
		r.renderShadowMaps(s)
	}

	viewProj := cam.ViewProjectionMatrix()
	r.buildItems(s, viewProj, w, h, shadows)

	filter := r.shadowMap.Type
	eye := cam.Position()
	r.parallelRows(h, func(y0, y1 int) {
		r.target.clearRows(y0, y1)
		r.target.rasterize(r.triangles, y0, y1)
		r.shadeRows(y0, y1, eye, filter, shadows)
	})

	for _, hp := range s.Helpers() {
		if hp.Visible() {
			drawLines(r.frame, r.target, hp.Lines(), viewProj)
		}
	}
	for _, o := range r.overlays {
		o.Draw(r.frame, r.pixelRatio)
	}

	if r.backend != nil {
		if err := r.backend.Present(r.frame); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
	}
	return nil
}

// buildItems snapshots visible meshes and assembles their screen triangles.
func (r *renderer) buildItems(s scene.Scene, viewProj mgl32.Mat4, w, h int, shadows bool) {
	frustum := common.ExtractFrustum(viewProj)
	states := make(map[uuid.UUID]*lightState, len(r.lights))
	for _, l := range r.lights {
		st := newLightState(l)
		if shadows {
			st.shadow = r.shadowMaps[l.ID()]
		}
		states[l.ID()] = st
	}

	r.items = r.items[:0]
	r.triangles = r.triangles[:0]
	var affecting []light.Light
	for _, m := range s.Meshes() {
		if !m.Visible() || m.Material() == nil {
			continue
		}
		center, radius := m.WorldBoundingSphere()
		if !frustum.IntersectsSphere(center, radius) {
			continue
		}

		params := m.Material().Params()
		item := drawItem{params: params, receiveShadow: m.ReceiveShadow()}
		if params.Map != nil {
			item.sampler, item.hasMap = params.Map.Sampler()
		}
		affecting = light.Affecting(affecting[:0], r.lights, center, radius)
		for _, l := range affecting {
			item.lights = append(item.lights, states[l.ID()])
		}

		geo := m.Geometry()
		r.vertices = transformVertices(r.vertices, geo.Vertices(), m.ModelMatrix(), viewProj)
		r.triangles = assemble(r.triangles, r.vertices, geo.Indices(), params.Side, len(r.items), w, h)
		r.items = append(r.items, item)
	}
}

// shadeRows resolves the visibility buffer of rows [y0, y1) into frame colors.
func (r *renderer) shadeRows(y0, y1 int, eye mgl32.Vec3, filter ShadowMapType, shadows bool) {
	t := r.target
	pix := r.frame.Pix
	var surf surface
	for y := y0; y < y1; y++ {
		for x := 0; x < t.width; x++ {
			i := y*t.width + x
			off := y*r.frame.Stride + x*4
			ti := t.tri[i]
			if ti < 0 {
				copy(pix[off:off+4], r.clearColor[:])
				continue
			}
			tri := &r.triangles[ti]
			item := &r.items[tri.item]
			surf.pos, surf.normal, surf.uv = tri.interpolate(t.bary[i])
			surf.view = eye.Sub(surf.pos)
			if l := surf.view.Len(); l > 0 {
				surf.view = surf.view.Mul(1 / l)
			}
			surf.receiveShadow = item.receiveShadow
			c := item.shade(&surf, filter, shadows)
			pix[off] = common.EncodeSRGB8(c[0])
			pix[off+1] = common.EncodeSRGB8(c[1])
			pix[off+2] = common.EncodeSRGB8(c[2])
			pix[off+3] = 255
		}
	}
}

// renderShadowMaps renders a depth map for every visible shadow-casting light.
// Maps of lights that no longer cast are dropped.
func (r *renderer) renderShadowMaps(s scene.Scene) {
	casters := s.Meshes()
	live := make(map[uuid.UUID]bool, len(r.lights))
	for _, l := range r.lights {
		if !l.Visible() || !l.CastShadow() || l.Shadow() == nil {
			continue
		}
		live[l.ID()] = true
		m, ok := r.shadowMaps[l.ID()]
		if !ok {
			m = &shadowMap{}
			r.shadowMaps[l.ID()] = m
		}
		m.prepare(l)
		r.shadowTgt.resize(m.width, m.height, true)

		for face := 0; face < m.faces; face++ {
			vp := m.viewProj[face]
			r.triangles = r.triangles[:0]
			for _, c := range casters {
				if !c.Visible() || !c.CastShadow() || c.Material() == nil {
					continue
				}
				geo := c.Geometry()
				r.vertices = transformVertices(r.vertices, geo.Vertices(), c.ModelMatrix(), vp)
				r.triangles = assemble(r.triangles, r.vertices, geo.Indices(), shadowSide(c.Material().Side()), 0, m.width, m.height)
			}
			r.parallelRows(m.height, func(y0, y1 int) {
				r.shadowTgt.clearRows(y0, y1)
				r.shadowTgt.rasterize(r.triangles, y0, y1)
				m.resolve(face, r.shadowTgt, r.triangles, y0, y1)
			})
		}
	}
	for id := range r.shadowMaps {
		if !live[id] {
			delete(r.shadowMaps, id)
		}
	}
}

// parallelRows runs fn over horizontal bands of [0, height) on the worker pool.
// A WaitGroup is the per-frame barrier; pool.Wait blocks until workers idle out.
func (r *renderer) parallelRows(height int, fn func(y0, y1 int)) {
	bands := min(r.workers*4, height)
	if bands <= 1 {
		fn(0, height)
		return
	}
	step := (height + bands - 1) / bands

	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		wg.Add(1)
		id := r.taskID
		r.taskID++
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
