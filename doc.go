// Package lantern is a scripted 2D canvas for [Ebitengine].
//
// An external scripting runtime drives the scene through a line-based text
// protocol: [Output] lines create drawables, [Animation] lines start property
// tweens, and [RegisterEvent] lines bind pointer interaction. Lantern decodes
// those lines, keeps the drawable and tween state, renders each frame through
// a bitflag-selected effect pipeline (pulse, shake, rainbow) with an optional
// separable Gaussian blur, and routes pointer hits back to the runtime.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop wired to a runtime:
//
//	rt := lantern.NewStdioRuntime()
//	lantern.Run(rt, lantern.RunConfig{
//		Title: "My Canvas", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] around a [Canvas], or drive the
// pieces — [Bridge], [Store], [Uniforms], [Pipeline], [Compositor] — yourself.
//
// # Protocol
//
// One event per line:
//
//	[Output] [Blue card 'Hello']
//	[Output] 42
//	[Animation] {"target":"Hello","property":"color","value":"blue","duration":0.3}
//	[RegisterEvent] Hello click
//
// A malformed payload drops that line only; later lines are unaffected.
// Interaction results return to the runtime as "(id, event name)" pairs.
//
// The [Runtime] interface is the swap point for the producer: real
// ([StdioRuntime]), scripted ([ScriptRunner]), or a test double
// ([MockRuntime]).
//
// Tweens interpolate via [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package lantern
