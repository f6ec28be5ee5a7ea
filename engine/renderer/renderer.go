package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	clearColor mgl32.Vec4

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws the viewer's wireframe scene to a window surface.
//
// A frame is: SetCamera and SetLines with the frame's data, then RenderFrame, which clears to the
// clear colour, draws the uploaded lines and presents.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the attachments could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background colour for the next frames.
	//
	// Parameters:
	//   - color: linear RGBA
	SetClearColor(color mgl32.Vec4)

	// SetCamera uploads the camera uniform for the next frame.
	//
	// Parameters:
	//   - uniform: the camera uniform block
	SetCamera(uniform camera.GPUCameraUniform)

	// SetLines uploads the wireframe to draw.
	//
	// Parameters:
	//   - w: the collected line segments
	//
	// Returns:
	//   - error: an error if the vertex buffer could not be grown
	SetLines(w *Wireframe) error

	// RenderFrame clears, draws the uploaded lines and presents.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	RenderFrame() error

	// Release frees all GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to the window's surface and builds its wireframe pipeline.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if the GPU could not be initialised
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		clearColor:  mgl32.Vec4{0.1, 0.1, 0.1, 1},
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("create renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(win.Width(), win.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	if err := r.backend.InitWireframePipeline(); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
}

func (r *renderer) SetCamera(uniform camera.GPUCameraUniform) {
	r.backend.WriteCamera(uniform.Marshal())
}

func (r *renderer) SetLines(w *Wireframe) error {
	return r.backend.WriteLines(w.Marshal(), uint32(w.VertexCount()))
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	c := r.clearColor
	r.mu.Unlock()

	err := r.backend.BeginFrame(wgpu.Color{
		R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3]),
	})
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	r.backend.DrawLines()
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}
