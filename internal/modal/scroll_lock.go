package modal

// Page is the scrollable surface behind the modal.
type Page interface {
	ScrollOffset() int
	ScrollTo(y int)
	// SetFrozen stops (or resumes) user scrolling without moving the page.
	SetFrozen(frozen bool)
}

// ScrollLock is the single page-level lock. At most one handle is
// outstanding; acquiring while held returns the existing handle so nested
// opens never stack.
type ScrollLock struct {
	page   Page
	handle *LockHandle

	// Lifetime counters, useful for diagnostics.
	acquired int
	released int
}

func NewScrollLock(p Page) *ScrollLock {
	return &ScrollLock{page: p}
}

// Acquire freezes the page and remembers its current offset.
func (l *ScrollLock) Acquire() *LockHandle {
	if l.handle != nil {
		return l.handle
	}
	h := &LockHandle{lock: l, saved: l.page.ScrollOffset()}
	l.page.SetFrozen(true)
	l.handle = h
	l.acquired++
	return h
}

func (l *ScrollLock) Held() bool { return l.handle != nil }

// Outstanding is 0 or 1.
func (l *ScrollLock) Outstanding() int { return l.acquired - l.released }

// LockHandle releases the lock it came from. Release is idempotent.
type LockHandle struct {
	lock     *ScrollLock
	saved    int
	released bool
}

// Saved is the page offset captured at acquisition.
func (h *LockHandle) Saved() int { return h.saved }

// Release unfreezes the page and puts it back at the saved offset.
func (h *LockHandle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	l := h.lock
	if l.handle == h {
		l.handle = nil
		l.released++
	}
	l.page.SetFrozen(false)
	l.page.ScrollTo(h.saved)
}
