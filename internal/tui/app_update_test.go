package tui

import (
	"strings"
	"testing"

	"folio-cli/internal/model"
	"folio-cli/internal/store"
	"folio-cli/internal/tabs"
	"folio-cli/internal/theme"
	vscroll "folio-cli/internal/viewport"

	tea "github.com/charmbracelet/bubbletea"
)

type memPrefs map[string]string

func (p memPrefs) Get(key string) (string, bool, error) {
	v, ok := p[key]
	return v, ok, nil
}

func (p memPrefs) Set(key, value string) error {
	p[key] = value
	return nil
}

func testContent() *model.Content {
	return &model.Content{
		Profile: model.Profile{
			Name: "Test Person",
			Role: "3D Artist",
			Bio:  "Sculpts props and vehicles.",
			Tags: []string{"Blender", "Sculpting"},
			Links: []model.Link{
				{Label: "GitHub", URL: "https://github.com/test"},
				{Label: "Email", URL: "mailto:test@example.com"},
			},
		},
		Tabs: []model.TabDescriptor{
			{ID: "about", Label: "About", Order: 0, Title: "About"},
			{ID: "projects", Label: "Projects", Order: 1, Title: "Projects"},
			{ID: "experience", Label: "Experience", Order: 2},
			{ID: "skills", Label: "Skills", Order: 3},
			{ID: "contact", Label: "Contact", Order: 4},
		},
		Bodies: map[string]string{
			"about":   strings.Repeat("Some paragraph about modelling.\n\n", 40),
			"contact": "Write to **hello@example.com**.",
		},
		Projects: []model.Project{
			{ID: "p1", Title: "Props", Category: "Home", Thumbnail: "images/a.png", Images: []string{"images/b.png", "images/c.png"}},
			{ID: "p2", Title: "Vehicles", Category: "Tech", Thumbnail: "images/d.png"},
			{ID: "p3", Title: "Crates", Category: "Home", Thumbnail: "images/e.png"},
		},
	}
}

func newTestModel(t *testing.T, prefs memPrefs, st *store.TUIState) appModel {
	t.Helper()
	pref, err := theme.Load(prefs, theme.Options{Probe: func() (bool, bool) { return false, true }})
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	m, err := newAppModel(Options{
		Content:     testContent(),
		ContentRoot: t.TempDir(),
		State:       st,
		Theme:       pref,
	})
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	t.Cleanup(m.close)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 16})
	return m
}

func update(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNextTab_ResetsScrollAndSlidesForward(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, runeKey('j'))
	}
	if got := m.page.ScrollOffset(); got != 5 {
		t.Fatalf("expected offset 5 after scrolling, got %d", got)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.tabs.ActiveID(); got != "projects" {
		t.Fatalf("expected projects active, got %q", got)
	}
	if got := m.page.ScrollOffset(); got != 0 {
		t.Fatalf("expected page back at top, got %d", got)
	}
	if m.page.slide != slideDistance {
		t.Fatalf("expected slide from the right (%d), got %d", slideDistance, m.page.slide)
	}
	if cmd == nil {
		t.Fatalf("expected a slide frame command")
	}
}

func TestPrevTab_AtFirstTabDoesNothing(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.tabs.ActiveID(); got != "about" {
		t.Fatalf("expected about to stay active, got %q", got)
	}
	if len(m.pending.tabChanges) != 0 {
		t.Fatalf("pending changes should be drained")
	}
}

func TestReselectActiveTab_NoSlide(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, runeKey('4'))
	if got := m.tabs.State(); got.ActiveID != "skills" || got.Direction != tabs.Forward {
		t.Fatalf("unexpected state after jump: %+v", got)
	}
	m.page.slide = 0

	m, _ = update(t, m, runeKey('4'))
	if got := m.tabs.State().Direction; got != tabs.None {
		t.Fatalf("reselect direction: want none, got %s", got)
	}
	if m.page.slide != 0 {
		t.Fatalf("reselect should not slide, got %d", m.page.slide)
	}
}

func TestJumpBackward_SlidesFromLeft(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, runeKey('5'))
	m, _ = update(t, m, runeKey('2'))
	if m.page.slide != -slideDistance {
		t.Fatalf("expected slide from the left, got %d", m.page.slide)
	}
	for i := 0; i < 20 && m.page.slide != 0; i++ {
		m, _ = update(t, m, slideFrameMsg{gen: m.page.slideGen})
	}
	if m.page.slide != 0 {
		t.Fatalf("slide did not finish: %d", m.page.slide)
	}
}

func openFirstProject(t *testing.T, m appModel) appModel {
	t.Helper()
	m, _ = update(t, m, runeKey('2'))
	m.page.ScrollTo(4)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.modal.IsOpen() {
		t.Fatalf("expected viewer open")
	}
	if cmd == nil {
		t.Fatalf("expected an image load command")
	}
	return m
}

func TestViewer_LocksPageAndRestoresOnClose(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m = openFirstProject(t, m)

	if got := m.modal.Project().ID; got != "p1" {
		t.Fatalf("expected p1, got %q", got)
	}
	if !m.page.Frozen() {
		t.Fatalf("page should be frozen while the viewer is open")
	}
	if !m.loadIssued || m.requested != m.modal.Token() {
		t.Fatalf("expected a load for the current image, got %+v", m.requested)
	}

	// Scrolling input is ignored while frozen.
	m.page.Scroll(3)
	if got := m.page.ScrollOffset(); got != 4 {
		t.Fatalf("frozen page moved to %d", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal.IsOpen() {
		t.Fatalf("esc should close the viewer")
	}
	if m.page.Frozen() {
		t.Fatalf("page should be unfrozen after close")
	}
	if got := m.page.ScrollOffset(); got != 4 {
		t.Fatalf("expected offset 4 restored, got %d", got)
	}
	if m.router.Listeners() != 0 {
		t.Fatalf("key listener leaked")
	}
	if m.lastProjectID != "p1" {
		t.Fatalf("expected last project p1, got %q", m.lastProjectID)
	}
}

func TestViewer_IgnoresStaleImageLoads(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m = openFirstProject(t, m)
	first := m.modal.Token()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.modal.ImageIndex(); got != 1 {
		t.Fatalf("expected image 1, got %d", got)
	}
	second := m.modal.Token()
	if m.requested != second {
		t.Fatalf("expected a load for image 1")
	}

	m, _ = update(t, m, imageLoadedMsg{token: first, info: imageInfo{Path: "images/a.png"}})
	if !m.modal.ImageLoading() || m.imageLoaded {
		t.Fatalf("stale completion must not finish the load")
	}

	m, _ = update(t, m, imageLoadedMsg{token: second, info: imageInfo{Path: "images/b.png", Format: "png", Width: 4, Height: 2}})
	if m.modal.ImageLoading() || !m.imageLoaded {
		t.Fatalf("current completion should finish the load")
	}
	if !strings.Contains(m.View(), "4×2 PNG") {
		t.Fatalf("expected image summary in view")
	}
}

func TestViewer_ButtonsViaFocus(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m = openFirstProject(t, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusPrevImage {
		t.Fatalf("tab should focus the first button, got %d", m.focus)
	}
	// Arrows move between buttons while one has focus.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.focus != focusNextImage || m.modal.ImageIndex() != 0 {
		t.Fatalf("right should move focus only: focus=%d index=%d", m.focus, m.modal.ImageIndex())
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.modal.ImageIndex(); got != 1 {
		t.Fatalf("next image button: want 1, got %d", got)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusNone {
		t.Fatalf("shift+tab twice should return to no focus, got %d", m.focus)
	}

	m, _ = update(t, m, runeKey('n'))
	if got := m.modal.Project().ID; got != "p2" {
		t.Fatalf("n should switch to p2, got %q", got)
	}

	m.focus = focusClose
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.modal.IsOpen() || m.focus != focusNone {
		t.Fatalf("close button should close and reset focus")
	}
}

func TestViewer_DigitSelectsImage(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m = openFirstProject(t, m)
	m, _ = update(t, m, runeKey('3'))
	if got := m.modal.ImageIndex(); got != 2 {
		t.Fatalf("expected image 2, got %d", got)
	}
	m, _ = update(t, m, runeKey('9'))
	if got := m.modal.ImageIndex(); got != 2 {
		t.Fatalf("out of range digit should be ignored, got %d", got)
	}
}

func TestGallery_FilterAndCursor(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, runeKey('2'))

	m, _ = update(t, m, runeKey('f'))
	if got := m.gallery.Filter(); got != "Home" {
		t.Fatalf("expected Home filter, got %q", got)
	}
	if got := len(m.galleryList.Items()); got != 2 {
		t.Fatalf("expected 2 visible projects, got %d", got)
	}

	m, _ = update(t, m, runeKey('j'))
	if id, _ := selectedProjectID(m.galleryList); id != "p3" {
		t.Fatalf("expected cursor on p3, got %q", id)
	}

	m, _ = update(t, m, runeKey('F'))
	if got := m.gallery.Filter(); got != "all" {
		t.Fatalf("expected all, got %q", got)
	}
	if id, _ := selectedProjectID(m.galleryList); id != "p3" {
		t.Fatalf("cursor should stay on p3, got %q", id)
	}
}

func TestThemeToggle_PersistsAndRerenders(t *testing.T) {
	prefs := memPrefs{}
	m := newTestModel(t, prefs, nil)
	t.Cleanup(func() { applyDarkBackground(false) })

	if m.theme.IsDark() {
		t.Fatalf("expected light start")
	}
	m, _ = update(t, m, runeKey('t'))
	if !m.theme.IsDark() {
		t.Fatalf("expected dark after toggle")
	}
	if prefs[theme.StorageKey] != "dark" {
		t.Fatalf("expected dark persisted, got %q", prefs[theme.StorageKey])
	}
	if !strings.Contains(m.headerView(), "dark") {
		t.Fatalf("header should show the theme")
	}
}

func TestStartup_MeasuresAfterSignalAndTwoFrames(t *testing.T) {
	pref, err := theme.Load(memPrefs{}, theme.Options{Probe: func() (bool, bool) { return false, true }})
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	m, err := newAppModel(Options{Content: testContent(), Theme: pref})
	if err != nil {
		t.Fatalf("newAppModel: %v", err)
	}
	t.Cleanup(m.close)

	if cmd := m.Init(); cmd == nil {
		t.Fatalf("Init should schedule the signal timeout")
	}
	if got := m.startup.Phase(); got != vscroll.PhaseAwaitSignal {
		t.Fatalf("phase: %s", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 16})
	if got := m.startup.Phase(); got != vscroll.PhaseSettle {
		t.Fatalf("phase after signal: %s", got)
	}
	// A late signal timeout is ignored.
	m, _ = update(t, m, startupTimerMsg{phase: vscroll.PhaseAwaitSignal})
	if got := m.startup.Phase(); got != vscroll.PhaseSettle {
		t.Fatalf("stale timer moved phase to %s", got)
	}

	m, _ = update(t, m, startupTimerMsg{phase: vscroll.PhaseSettle})
	m, _ = update(t, m, startupFrameMsg{phase: vscroll.PhaseFrame1})
	if m.coord.Measured() {
		t.Fatalf("measured before the second frame")
	}
	m, _ = update(t, m, startupFrameMsg{phase: vscroll.PhaseFrame2})
	if !m.startup.Done() || !m.coord.Measured() {
		t.Fatalf("expected measurement after frame 2")
	}
	if got := m.coord.Geometry().Size; got != len("About")+2 {
		t.Fatalf("indicator width: want %d, got %d", len("About")+2, got)
	}
}

func TestNarrowStrip_ScrollsActiveTabIntoView(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 24, Height: 16})

	m, cmd := update(t, m, runeKey('5'))
	if cmd == nil {
		t.Fatalf("expected strip animation frame")
	}
	for i := 0; i < 50 && m.strip.scroller.Animating(); i++ {
		m, _ = update(t, m, stripFrameMsg{gen: m.strip.scroller.Gen()})
	}
	el, ok := m.strip.Element("contact")
	if !ok {
		t.Fatalf("contact not laid out")
	}
	cont, _, _, _ := m.strip.Container()
	if el.Left < cont.Left || el.Right() > cont.Right() {
		t.Fatalf("contact not visible: el=%+v cont=%+v", el, cont)
	}
	if !m.coord.Affordance().CanScrollLeft {
		t.Fatalf("expected left scroll affordance")
	}
}

func TestTUIState_SaveAndRestore(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)
	m, _ = update(t, m, runeKey('2'))
	m, _ = update(t, m, runeKey('f'))
	m = openFirstProject(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	st := m.tuiState()
	if st.ActiveTab != "projects" || st.Filter != "Home" || st.LastProjectID != "p1" {
		t.Fatalf("unexpected state: %+v", st)
	}

	r := newTestModel(t, memPrefs{}, st)
	if got := r.tabs.ActiveID(); got != "projects" {
		t.Fatalf("restored tab: %q", got)
	}
	if got := r.gallery.Filter(); got != "Home" {
		t.Fatalf("restored filter: %q", got)
	}
	if r.modal.IsOpen() {
		t.Fatalf("viewer must start closed")
	}

	bad := newTestModel(t, memPrefs{}, &store.TUIState{ActiveTab: "gone", Filter: "Nope", LastProjectID: "zz"})
	if bad.tabs.ActiveID() != "about" || bad.gallery.Filter() != "all" || bad.lastProjectID != "" {
		t.Fatalf("unknown ids should be ignored")
	}
}

func TestProfileCard_OnLandingTabOnly(t *testing.T) {
	m := newTestModel(t, memPrefs{}, nil)

	view := m.View()
	for _, want := range []string{"Sculpts props and vehicles.", "Blender", "Sculpting", "GitHub", "mailto:test@example.com"} {
		if !strings.Contains(view, want) {
			t.Fatalf("about view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, runeKey('5'))
	if m.tabs.ActiveID() != "contact" {
		t.Fatalf("active tab: %q", m.tabs.ActiveID())
	}
	if strings.Contains(m.View(), "Sculpts props") {
		t.Fatalf("profile card should only show on the landing tab")
	}
}

func TestRenderProfileCard_WrapsChipsAndSkipsEmpty(t *testing.T) {
	if got := renderProfileCard(model.Profile{Name: "x"}, 40); got != "" {
		t.Fatalf("empty profile: %q", got)
	}
	card := renderProfileCard(model.Profile{Tags: []string{"Blender", "Photoshop", "Substance"}}, 12)
	if n := strings.Count(card, "\n") + 1; n != 3 {
		t.Fatalf("expected one chip per row at width 12, got %d rows:\n%s", n, card)
	}
}
