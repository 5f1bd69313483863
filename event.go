package lantern

// Event is a decoded scene-mutation command. The concrete types are
// DrawEvent, AnimateEvent, RegisterHandlerEvent, and UnparsedEvent;
// consumers type-switch over them.
type Event interface {
	isEvent()
}

// DrawEvent inserts or updates a drawable by id.
type DrawEvent struct {
	Drawable Drawable
}

// AnimateEvent starts or replaces the tween keyed by (Target, Property).
type AnimateEvent struct {
	Target   string
	Property Property
	Value    PropertyValue
	Duration float32 // seconds
}

// RegisterHandlerEvent binds an interaction event name to a drawable so
// pointer input inside its bounds round-trips to the runtime.
type RegisterHandlerEvent struct {
	Target string
	Name   string
}

// UnparsedEvent carries a line that matched no protocol tag. The store
// ignores it; it exists so the raw text is observable downstream.
type UnparsedEvent struct {
	Raw string
}

func (DrawEvent) isEvent()            {}
func (AnimateEvent) isEvent()         {}
func (RegisterHandlerEvent) isEvent() {}
func (UnparsedEvent) isEvent()        {}

// Property names an animatable drawable property. Each property carries its
// own interpolation behavior: continuous properties interpolate linearly,
// threshold properties snap at a fixed boundary.
type Property uint8

const (
	PropertyColor  Property = iota // continuous, 4 channels
	PropertyScale                  // continuous, 1 channel
	PropertyShadow                 // threshold: snaps when the driver crosses shadowSnapDepth
)

// parseProperty maps a protocol property name to its Property.
func parseProperty(name string) (Property, bool) {
	switch name {
	case "color", "背景":
		return PropertyColor, true
	case "scale":
		return PropertyScale, true
	case "shadow", "影":
		return PropertyShadow, true
	default:
		return 0, false
	}
}

// PropertyValue is an Animate target value: either a number or a color name.
type PropertyValue struct {
	Number float64
	Name   string
	IsName bool
}

// OutboundEvent is an interaction result returned to the runtime:
// a pointer event landed inside the bounds of a bound drawable.
type OutboundEvent struct {
	ID   string // drawable id
	Name string // registered event name, e.g. "click" or "hover"
}
