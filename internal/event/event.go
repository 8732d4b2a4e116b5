// Package event provides the viewer's publish/subscribe dispatcher.
//
// Events are routed by Kind, a small enum, so observers subscribe to a
// concrete event type without any reflection.
package event

// Kind identifies an event type.
type Kind int

const (
	KindNone Kind = iota
	KindWindowResize
	KindKeyPressed
	KindKeyReleased
	KindModelLoadRequested
	KindModelLoaded
	KindModelLoadFailed

	kindCount
)

var kindNames = [...]string{
	KindNone:               "None",
	KindWindowResize:       "WindowResize",
	KindKeyPressed:         "KeyPressed",
	KindKeyReleased:        "KeyReleased",
	KindModelLoadRequested: "ModelLoadRequested",
	KindModelLoaded:        "ModelLoaded",
	KindModelLoadFailed:    "ModelLoadFailed",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// Event is implemented by every dispatched event. Events are passed by
// pointer so an observer can mark one handled and stop propagation.
type Event interface {
	Kind() Kind
	Handle()
	Handled() bool
}

// Base carries the handled flag; embed it in concrete events.
type Base struct {
	handled bool
}

// Handle marks the event as consumed.
func (b *Base) Handle() { b.handled = true }

// Handled reports whether an observer consumed the event.
func (b *Base) Handled() bool { return b.handled }

// WindowResize is published when the drawable size changes.
type WindowResize struct {
	Base
	Width, Height int
}

func (*WindowResize) Kind() Kind { return KindWindowResize }

// KeyPressed is published on key down. Key is a platform scancode.
type KeyPressed struct {
	Base
	Key    int
	Repeat bool
}

func (*KeyPressed) Kind() Kind { return KindKeyPressed }

// KeyReleased is published on key up.
type KeyReleased struct {
	Base
	Key int
}

func (*KeyReleased) Kind() Kind { return KindKeyReleased }

// ModelLoadRequested asks the viewer to replace the current model.
type ModelLoadRequested struct {
	Base
	Path  string
	Scale float32
}

func (*ModelLoadRequested) Kind() Kind { return KindModelLoadRequested }

// ModelLoaded reports a successful load.
type ModelLoaded struct {
	Base
	Path      string
	Meshes    int
	Materials int
}

func (*ModelLoaded) Kind() Kind { return KindModelLoaded }

// ModelLoadFailed reports a load error. Fallback is the file that was
// restored instead, or "" when nothing could be restored.
type ModelLoadFailed struct {
	Base
	Path     string
	Err      error
	Fallback string
}

func (*ModelLoadFailed) Kind() Kind { return KindModelLoadFailed }
