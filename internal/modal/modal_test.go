package modal

import (
	"errors"
	"testing"

	"folio-cli/internal/gallery"
	"folio-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	offset int
	frozen bool

	freezes   int
	unfreezes int
}

func (p *fakePage) ScrollOffset() int { return p.offset }

func (p *fakePage) ScrollTo(y int) { p.offset = y }

func (p *fakePage) SetFrozen(f bool) {
	if f {
		p.freezes++
	} else {
		p.unfreezes++
	}
	p.frozen = f
}

type harness struct {
	page    *fakePage
	lock    *ScrollLock
	router  *KeyRouter
	gallery *gallery.Controller
	modal   *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	g, err := gallery.New([]model.Project{
		{ID: "p1", Category: "Props", Thumbnail: "/gr.png", Images: []string{"/grg.png", "/tap.png", "/film.png"}},
		{ID: "p2", Category: "Tech", Thumbnail: "/dd.png", Images: []string{"/flash.png"}},
		{ID: "p3", Category: "Misc", Thumbnail: "/jola.png"},
	}, nil)
	require.NoError(t, err)

	h := &harness{page: &fakePage{offset: 37}, router: &KeyRouter{}, gallery: g}
	h.lock = NewScrollLock(h.page)
	h.modal = New(g, h.lock, h.router, nil)
	return h
}

func (h *harness) assertInvariant(t *testing.T) {
	t.Helper()
	selected := h.gallery.State().SelectedID != ""
	assert.Equal(t, selected, h.modal.IsOpen(), "open must equal selection")
	assert.LessOrEqual(t, h.lock.Outstanding(), 1)
	if h.modal.IsOpen() {
		assert.Equal(t, 1, h.router.Listeners())
		assert.True(t, h.page.frozen)
	} else {
		assert.Zero(t, h.router.Listeners())
		assert.False(t, h.page.frozen)
	}
}

func TestOpen_CapturesScrollAndLocks(t *testing.T) {
	h := newHarness(t)
	h.assertInvariant(t)

	require.NoError(t, h.modal.Open("p1"))
	h.assertInvariant(t)

	st := h.modal.State()
	assert.True(t, st.Open)
	assert.Equal(t, "p1", st.ProjectID)
	assert.Equal(t, 0, st.ImageIndex)
	assert.True(t, st.ImageLoading)
	require.NotNil(t, st.SavedScroll)
	assert.Equal(t, 37, *st.SavedScroll)
}

func TestClose_RestoresScrollAndDetaches(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modal.Open("p1"))

	// Something moves the page underneath while locked.
	h.page.offset = 0

	h.modal.Close()
	h.assertInvariant(t)
	assert.Equal(t, 37, h.page.offset)
	assert.Nil(t, h.modal.State().SavedScroll)
	assert.Equal(t, "", h.gallery.State().SelectedID)
	assert.Zero(t, h.lock.Outstanding())
}

func TestImageCycling(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modal.Open("p1"))
	n := h.modal.TotalImages()
	require.Equal(t, 4, n)

	for i := 0; i < n; i++ {
		require.NoError(t, h.modal.NextImage())
	}
	assert.Equal(t, 0, h.modal.ImageIndex())

	require.NoError(t, h.modal.PreviousImage())
	assert.Equal(t, n-1, h.modal.ImageIndex())
	assert.Equal(t, "/film.png", h.modal.CurrentImage())
}

func TestSelectImage_Bounds(t *testing.T) {
	h := newHarness(t)
	assert.True(t, errors.Is(h.modal.SelectImage(0), ErrClosed))

	require.NoError(t, h.modal.Open("p2"))
	require.NoError(t, h.modal.SelectImage(1))
	assert.Equal(t, "/flash.png", h.modal.CurrentImage())

	assert.True(t, errors.Is(h.modal.SelectImage(2), ErrImageOutOfRange))
	assert.True(t, errors.Is(h.modal.SelectImage(-1), ErrImageOutOfRange))
	assert.Equal(t, 1, h.modal.ImageIndex())
}

func TestSwitchProject_ResetsIndexAndReusesLock(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modal.Open("p1"))
	require.NoError(t, h.modal.SelectImage(2))
	tok := h.modal.Token()

	h.page.offset = 5
	require.NoError(t, h.modal.SwitchProject("p2"))
	h.assertInvariant(t)

	assert.Equal(t, "p2", h.modal.Project().ID)
	assert.Equal(t, 0, h.modal.ImageIndex())
	assert.True(t, h.modal.ImageLoading())
	assert.Equal(t, 1, h.page.freezes, "switching must not re-acquire the lock")
	assert.Equal(t, tok.Generation, h.modal.Token().Generation)

	// Saved offset is still the one from the original open.
	require.NotNil(t, h.modal.State().SavedScroll)
	assert.Equal(t, 37, *h.modal.State().SavedScroll)

	h.modal.Close()
	assert.Equal(t, 37, h.page.offset)
	assert.Equal(t, 1, h.page.unfreezes)
}

func TestSwitchProject_WhenClosed(t *testing.T) {
	h := newHarness(t)
	assert.True(t, errors.Is(h.modal.SwitchProject("p2"), ErrClosed))
	assert.True(t, errors.Is(h.modal.NextProject(), ErrClosed))
	h.assertInvariant(t)
}

func TestLockBalance_ArbitrarySequence(t *testing.T) {
	h := newHarness(t)

	ops := []func(){
		func() { _ = h.modal.Open("p1") },
		func() { _ = h.modal.Open("p3") },
		func() { _ = h.modal.NextProject() },
		func() { h.modal.Close() },
		func() { h.modal.Close() },
		func() { h.page.offset = 90 },
		func() { _ = h.modal.Open("p2") },
		func() { h.page.offset = 3 },
		func() { _ = h.modal.PreviousProject() },
		func() { _ = h.modal.SwitchProject("p1") },
	}
	for _, op := range ops {
		op()
		h.assertInvariant(t)
	}

	h.modal.Close()
	h.assertInvariant(t)
	assert.Zero(t, h.lock.Outstanding())
	assert.Equal(t, 90, h.page.offset, "restores the offset captured at the most recent open")
	assert.Equal(t, h.page.freezes, h.page.unfreezes)
}

func TestImageLoaded_DiscardsStaleCompletion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modal.Open("p1"))

	require.NoError(t, h.modal.SelectImage(1))
	tok1 := h.modal.Token()
	require.NoError(t, h.modal.SelectImage(0))
	tok0 := h.modal.Token()
	require.NoError(t, h.modal.SelectImage(1))

	// Late completion for image 0 arrives first.
	assert.False(t, h.modal.ImageLoaded(tok0))
	assert.True(t, h.modal.ImageLoading())

	assert.True(t, h.modal.ImageLoaded(tok1))
	assert.False(t, h.modal.ImageLoading())
}

func TestImageLoaded_AfterReopen(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.modal.Open("p1"))
	tok := h.modal.Token()
	h.modal.Close()

	assert.False(t, h.modal.ImageLoaded(tok), "closed modal accepts nothing")

	require.NoError(t, h.modal.Open("p1"))
	assert.NotEqual(t, tok, h.modal.Token())
	assert.False(t, h.modal.ImageLoaded(tok))
	assert.True(t, h.modal.ImageLoading())
}

func TestKeyRouting(t *testing.T) {
	h := newHarness(t)

	// Nothing listens while closed.
	assert.False(t, h.router.Dispatch(KeyEvent{Key: KeyRight}))

	require.NoError(t, h.modal.Open("p1"))
	assert.True(t, h.router.Dispatch(KeyEvent{Key: KeyRight}))
	assert.Equal(t, 1, h.modal.ImageIndex())

	assert.True(t, h.router.Dispatch(KeyEvent{Key: KeyLeft}))
	assert.True(t, h.router.Dispatch(KeyEvent{Key: KeyLeft}))
	assert.Equal(t, 3, h.modal.ImageIndex())

	// Arrows from a focused control are left to the control.
	assert.False(t, h.router.Dispatch(KeyEvent{Key: KeyRight, FromControl: true}))
	assert.Equal(t, 3, h.modal.ImageIndex())

	assert.True(t, h.router.Dispatch(KeyEvent{Key: "n"}))
	assert.Equal(t, "p2", h.modal.Project().ID)

	assert.False(t, h.router.Dispatch(KeyEvent{Key: "x"}))

	assert.True(t, h.router.Dispatch(KeyEvent{Key: KeyEscape}))
	h.assertInvariant(t)
	assert.False(t, h.router.Dispatch(KeyEvent{Key: KeyEscape}))
}

func TestTeardown(t *testing.T) {
	h := newHarness(t)
	h.modal.Teardown()
	h.assertInvariant(t)

	require.NoError(t, h.modal.Open("p2"))
	h.page.offset = 0
	h.modal.Teardown()
	h.assertInvariant(t)
	assert.Equal(t, 37, h.page.offset)
}

func TestScrollLock_HandleReleaseIdempotent(t *testing.T) {
	p := &fakePage{offset: 12}
	l := NewScrollLock(p)

	h1 := l.Acquire()
	h2 := l.Acquire()
	assert.Same(t, h1, h2)
	assert.Equal(t, 1, l.Outstanding())

	p.offset = 0
	h1.Release()
	h2.Release()
	assert.Zero(t, l.Outstanding())
	assert.False(t, l.Held())
	assert.Equal(t, 12, p.offset)
	assert.Equal(t, 1, p.unfreezes)
}
