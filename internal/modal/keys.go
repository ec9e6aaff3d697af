package modal

// Key names follow Bubble Tea's KeyMsg.String().
const (
	KeyEscape = "esc"
	KeyLeft   = "left"
	KeyRight  = "right"
)

// KeyEvent is a key press as seen by a listener. FromControl is set when a
// focusable control (a button) had focus and may handle the key itself.
type KeyEvent struct {
	Key         string
	FromControl bool
}

// KeyHandler reports whether it consumed the event.
type KeyHandler func(KeyEvent) bool

// KeySource delivers key events to attached handlers until detached.
type KeySource interface {
	Attach(h KeyHandler) (detach func())
}

// KeyRouter is a KeySource that offers each event to the most recently
// attached handler first.
type KeyRouter struct {
	nextID   int
	handlers []routedHandler
}

type routedHandler struct {
	id int
	h  KeyHandler
}

func (r *KeyRouter) Attach(h KeyHandler) func() {
	r.nextID++
	id := r.nextID
	r.handlers = append(r.handlers, routedHandler{id: id, h: h})
	detached := false
	return func() {
		if detached {
			return
		}
		detached = true
		for i, rh := range r.handlers {
			if rh.id == id {
				r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch offers ev to handlers, newest first, and reports whether one
// consumed it.
func (r *KeyRouter) Dispatch(ev KeyEvent) bool {
	hs := append([]routedHandler(nil), r.handlers...)
	for i := len(hs) - 1; i >= 0; i-- {
		if hs[i].h(ev) {
			return true
		}
	}
	return false
}

// Listeners is the number of attached handlers.
func (r *KeyRouter) Listeners() int { return len(r.handlers) }
