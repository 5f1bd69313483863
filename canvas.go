package lantern

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures a canvas session.
type RunConfig struct {
	Title  string
	Width  int // logical screen width in pixels; 0 = 640
	Height int // logical screen height in pixels; 0 = 480
	TPS    int // ticks per second; 0 = ebiten default
	Blur   bool
	Debug  bool
}

// Canvas is the frame loop: it owns the bridge, the scene store, the uniform
// block, the effect pipeline, and the compositor, and implements ebiten.Game.
//
// One tick: decode pending events, apply them to the store, advance tweens by
// dt, update uniforms, then (in Draw) submit the effect pass, the blur passes
// if enabled, and the overlay. Deferred outbound input events are dispatched
// at the end of the tick. Everything runs on the game loop goroutine; GPU
// buffers have no concurrent writers.
type Canvas struct {
	bridge   *Bridge
	store    *Store
	uniforms *Uniforms
	pipeline *Pipeline
	comp     *Compositor
	script   *ScriptRunner

	width    int
	height   int
	prevDown bool
}

// NewCanvas creates a canvas driven by the given runtime. A nil runtime is
// allowed for script-driven or test sessions.
func NewCanvas(rt Runtime, cfg RunConfig) *Canvas {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	SetDebugMode(cfg.Debug)

	c := &Canvas{
		bridge:   NewBridge(rt),
		store:    NewStore(),
		uniforms: NewUniforms(cfg.Width, cfg.Height),
		pipeline: NewPipeline(),
		comp:     NewCompositor(),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	c.comp.BlurEnabled = cfg.Blur
	return c
}

// Bridge returns the canvas's event bridge.
func (c *Canvas) Bridge() *Bridge { return c.bridge }

// Store returns the canvas's scene store.
func (c *Canvas) Store() *Store { return c.store }

// Uniforms returns the canvas's global uniform block.
func (c *Canvas) Uniforms() *Uniforms { return c.uniforms }

// SetScriptRunner attaches a script runner, stepped once per tick before
// event decoding.
func (c *Canvas) SetScriptRunner(r *ScriptRunner) {
	c.script = r
}

// Update runs one tick of the frame loop.
func (c *Canvas) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if c.script != nil {
		c.script.step(c)
	}

	// Decode and apply pending events, in arrival order, exactly once.
	for _, ev := range c.bridge.Poll() {
		c.store.Apply(ev)
	}
	layoutFlow(c.store.Drawables())
	c.store.Advance(dt)
	c.uniforms.Update(dt)

	// Pointer input against current bounds.
	mx, my := ebiten.CursorPosition()
	c.comp.PointerMove(c.store, c.bridge, float64(mx), float64(my))
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down && !c.prevDown {
		c.comp.PointerDown(c.store, c.bridge, float64(mx), float64(my))
	}
	c.prevDown = down

	// Dispatch deferred input callbacks last.
	c.bridge.Flush()
	return nil
}

// Draw renders the frame: effect pass, optional blur passes, overlay.
func (c *Canvas) Draw(screen *ebiten.Image) {
	c.comp.Frame(screen, c.store.Drawables(), c.pipeline, c.uniforms)
}

// Layout reports the logical screen size. Resize notifications update the
// uniform block immediately; a non-positive size is rejected and the last
// valid size stays in effect.
func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		if outsideWidth != c.width || outsideHeight != c.height {
			if err := c.uniforms.Resize(outsideWidth, outsideHeight); err != nil {
				debugf("resize rejected: %v", err)
			} else {
				c.width = outsideWidth
				c.height = outsideHeight
			}
		}
	}
	return c.width, c.height
}

// Run opens a window and runs the canvas until the session ends. Loss of the
// GPU device or surface is fatal to the session and surfaces here as the
// returned error; recovery means a fresh Run with fresh resources.
func Run(rt Runtime, cfg RunConfig) error {
	c := NewCanvas(rt, cfg)
	title := cfg.Title
	if title == "" {
		title = "Lantern"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(c.width, c.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(c)
}
