package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"folio-cli/internal/gallery"
	"folio-cli/internal/modal"
	"folio-cli/internal/model"
	"folio-cli/internal/store"
	"folio-cli/internal/tabs"
	"folio-cli/internal/theme"
	vscroll "folio-cli/internal/viewport"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// projectsTabID is the tab whose body is the project gallery.
const projectsTabID = "projects"

// Rows above the page: the profile line and the two strip rows.
const headerRows = 3

// pending collects notifications raised by subscribers during Update. They
// are applied once the handler returns (see settle).
type pending struct {
	tabChanges   []tabs.Change
	themeChanged bool
}

type appModel struct {
	content *model.Content
	log     *slog.Logger
	store   store.Store

	width          int
	height         int
	seenWindowSize bool

	keys      keyMap
	modalKeys modalKeyMap
	help      help.Model

	tabs    *tabs.Controller
	coord   *vscroll.Coordinator
	startup *vscroll.Startup
	strip   *tabStrip
	page    *contentPage

	gallery     *gallery.Controller
	galleryList list.Model
	// First page line of the gallery list, set by refreshPage.
	galleryTop int

	lock   *modal.ScrollLock
	router *modal.KeyRouter
	modal  *modal.Controller
	focus  modalFocus

	images      *imageLoader
	loadIssued  bool
	requested   modal.Token
	image       imageInfo
	imageLoaded bool

	lastProjectID string

	theme *theme.Preference
	md    *markdownRenderer

	pending *pending
	unsubs  []func()

	flash    string
	flashSeq int
}

func newAppModel(opts Options) (appModel, error) {
	if opts.Content == nil {
		return appModel{}, fmt.Errorf("tui: no content")
	}
	if opts.Theme == nil {
		return appModel{}, fmt.Errorf("tui: no theme preference")
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	reg, err := tabs.NewRegistry(opts.Content.Tabs)
	if err != nil {
		return appModel{}, err
	}
	g, err := gallery.New(opts.Content.Projects, log.With("component", "gallery"))
	if err != nil {
		return appModel{}, err
	}

	m := appModel{
		content:     opts.Content,
		log:         log,
		store:       opts.Store,
		keys:        newKeyMap(),
		modalKeys:   newModalKeyMap(),
		help:        help.New(),
		tabs:        tabs.NewController(reg, log.With("component", "tabs")),
		startup:     vscroll.NewStartup(true),
		strip:       newTabStrip(reg.Tabs()),
		page:        newContentPage(),
		gallery:     g,
		galleryList: newGalleryList(),
		router:      &modal.KeyRouter{},
		images:      newImageLoader(opts.ContentRoot, log.With("component", "images")),
		theme:       opts.Theme,
		md:          newMarkdownRenderer(),
		pending:     &pending{},
	}
	m.lock = modal.NewScrollLock(m.page)
	m.modal = modal.New(g, m.lock, m.router, log.With("component", "modal"))

	if st := opts.State; st != nil {
		m.restore(*st)
	}

	padding := opts.ScrollPadding
	m.coord = vscroll.NewCoordinator(m.strip, m.tabs.ActiveID(), vscroll.Options{
		Padding:        &padding,
		ResizeDebounce: opts.ResizeDebounce,
		Logger:         log.With("component", "strip"),
	})

	// Registration order matters: the indicator follows the tab before the
	// page re-renders.
	coord, q := m.coord, m.pending
	m.unsubs = append(m.unsubs,
		m.tabs.Subscribe(func(ch tabs.Change) { coord.ActiveChanged(ch.ActiveID) }),
		m.tabs.Subscribe(func(ch tabs.Change) { q.tabChanges = append(q.tabChanges, ch) }),
		m.theme.Subscribe(func(dark bool) {
			applyDarkBackground(dark)
			q.themeChanged = true
		}),
	)

	syncGalleryList(&m.galleryList, m.gallery, 0)
	if m.lastProjectID != "" {
		selectProjectByID(&m.galleryList, m.lastProjectID)
	}
	return m, nil
}

// restore applies persisted UI state. Unknown ids are ignored; the viewer
// always starts closed.
func (m *appModel) restore(st store.TUIState) {
	if st.ActiveTab != "" {
		if err := m.tabs.Reset(st.ActiveTab); err != nil {
			m.log.Debug("ignore saved tab", "err", err)
		}
	}
	if st.Filter != "" {
		if err := m.gallery.SetFilter(st.Filter); err != nil {
			m.log.Debug("ignore saved filter", "err", err)
		}
	}
	if _, ok := m.gallery.Project(st.LastProjectID); ok {
		m.lastProjectID = st.LastProjectID
	}
}

// tuiState is what gets persisted on exit.
func (m appModel) tuiState() *store.TUIState {
	return &store.TUIState{
		Version:       1,
		ActiveTab:     m.tabs.ActiveID(),
		Filter:        m.gallery.Filter(),
		LastProjectID: m.lastProjectID,
	}
}

func (m *appModel) close() {
	m.modal.Teardown()
	for _, fn := range m.unsubs {
		fn()
	}
	m.unsubs = nil
}

func (m appModel) onGalleryTab() bool {
	return m.tabs.ActiveID() == projectsTabID
}

// pageWidth is the width available to page content inside its margins.
func (m appModel) pageWidth() int {
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m appModel) footerView() string {
	if m.flash != "" {
		return lipgloss.NewStyle().Foreground(colorError).Render(truncateToWidth(m.flash, m.width))
	}
	m.help.Width = m.width
	return m.help.View(m.keys)
}

// layout sizes the strip and the page for the current window.
func (m *appModel) layout() (stripClamped bool) {
	if m.width <= 0 || m.height <= 0 {
		return false
	}
	stripClamped = m.strip.SetWidth(m.width)
	h := m.height - headerRows - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}
	m.page.SetSize(m.width, h)
	syncGalleryList(&m.galleryList, m.gallery, m.pageWidth())
	m.refreshPage()
	return stripClamped
}

// refreshPage re-renders the body of the active tab into the page.
func (m *appModel) refreshPage() {
	if m.width <= 0 {
		return
	}
	desc, _ := m.tabs.Registry().Find(m.tabs.ActiveID())
	w := m.pageWidth()

	var lines []string
	if desc.ID == m.tabs.Registry().First().ID {
		if card := renderProfileCard(m.content.Profile, w); card != "" {
			lines = append(lines, card, "")
		}
	}
	if desc.Title != "" {
		lines = append(lines, styleAccent().Render(truncateToWidth(desc.Title, w)))
	}
	if desc.Subtitle != "" {
		lines = append(lines, styleMuted().Render(truncateToWidth(desc.Subtitle, w)))
	}
	if desc.Summary != "" {
		lines = append(lines, lipgloss.NewStyle().Width(w).Render(desc.Summary))
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	var body string
	if desc.ID == projectsTabID {
		head := strings.Join(append(lines, renderFilterBar(m.gallery, w), ""), "\n")
		m.galleryTop = lipgloss.Height(head)
		if len(m.galleryList.Items()) == 0 {
			body = head + "\n" + styleMuted().Render("No projects in this category.")
		} else {
			body = head + "\n" + m.galleryList.View()
		}
	} else {
		md := m.md.Render(m.content.Bodies[desc.ID], w, m.theme.IsDark())
		body = strings.Join(append(lines, md), "\n")
	}
	m.page.SetContent(lipgloss.NewStyle().PaddingLeft(2).Render(body))
}

// revealGalleryCursor scrolls the page so the selected card is visible.
func (m *appModel) revealGalleryCursor() {
	top := m.galleryTop + m.galleryList.Index()*cardRows()
	m.page.Reveal(top, newCardDelegate().Height())
}
