// Package prefs holds the runtime preference state of the application:
// boolean flags, font sizes, and the recent-projects list. State is readable
// and writable from any goroutine; observable handles and derived style
// strings belong to the single-goroutine UI domain and are updated through
// marshaled tasks.
package prefs

import (
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/inkwell-ide/inkwell/internal/backend"
	"github.com/inkwell-ide/inkwell/internal/dispatch"
	"github.com/inkwell-ide/inkwell/internal/observe"
)

// asserter is satisfied by *dispatch.Loop when domain assertions are wanted.
type asserter interface {
	Assert()
}

// Options configures a Manager.
type Options struct {
	// Flags is the host-owned flag set with compiled defaults. Nil means
	// DefaultFlags().
	Flags map[string]bool
	// RecentCapacity bounds the recent-projects list. Zero means
	// DefaultRecentCapacity.
	RecentCapacity int
	// IsBootstrapProject filters paths out of the recent-projects list.
	// Nil means no path is filtered.
	IsBootstrapProject func(path string) bool
	// RefreshViews is invoked (on the UI domain, fire-and-forget) after an
	// editor font-size change. Nil disables refresh.
	RefreshViews func()
}

// Manager is the preference state object. One instance is owned by the
// application context and shared by reference; there are no package-level
// globals.
type Manager struct {
	backend backend.Backend
	ui      dispatch.Runner
	assert  func()
	logger  *slog.Logger

	isBootstrap  func(string) bool
	refreshViews func()

	flagMu sync.Mutex
	flags  map[string]bool

	// flagCells is touched only on the UI domain; creation races are
	// impossible there by construction.
	flagCells map[string]*observe.Cell[bool]

	editorFontSize *observe.Cell[int]
	editorFont     *observe.Cell[string]

	// strideFontSize is created lazily on the UI domain.
	strideFontSize *observe.Cell[int]

	styleMu       sync.Mutex
	styleBuilt    bool
	styleFull     string
	styleSizeOnly string

	highlightStrength *observe.Cell[int]

	recentMu       sync.Mutex
	recent         []string
	recentCapacity int

	stateMu           sync.Mutex
	projectDirectory  string
	navigatorExpanded bool
}

// New builds a Manager and performs the startup phase: every piece of state
// is read from the backend once, falling back to compiled defaults.
func New(b backend.Backend, ui dispatch.Runner, opts Options) *Manager {
	flags := opts.Flags
	if flags == nil {
		flags = DefaultFlags()
	}
	capacity := opts.RecentCapacity
	if capacity <= 0 {
		capacity = DefaultRecentCapacity
	}

	m := &Manager{
		backend:        b,
		ui:             ui,
		assert:         func() {},
		logger:         slog.Default(),
		isBootstrap:    opts.IsBootstrapProject,
		refreshViews:   opts.RefreshViews,
		flags:          make(map[string]bool, len(flags)),
		flagCells:      make(map[string]*observe.Cell[bool]),
		recentCapacity: capacity,
	}
	if a, ok := ui.(asserter); ok {
		m.assert = a.Assert
	}

	for name, def := range flags {
		raw := b.GetString(name, strconv.FormatBool(def))
		m.flags[name] = raw == "true"
	}

	m.editorFontSize = observe.NewCell(b.GetInt(editorFontSizeKey, DefaultEditorFontSize))
	m.editorFont = observe.NewCell(b.GetString(platformFontKey(), defaultFontFamily))
	m.highlightStrength = observe.NewCell(b.GetInt(highlightStrengthKey, defaultHighlightStrength))

	m.navigatorExpanded = b.GetString(navigatorExpandedKey, "true") == "true"

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	m.projectDirectory = b.GetString(projectPathKey, home)

	m.recent = m.loadRecentProjects()

	m.logger.Debug("preferences loaded",
		"flags", len(m.flags),
		"recent_projects", len(m.recent),
		"editor_font_size", m.editorFontSize.Get())

	return m
}

// ProjectDirectory returns the current project directory, falling back to
// the user home directory when the stored path no longer exists.
func (m *Manager) ProjectDirectory() string {
	m.stateMu.Lock()
	dir := m.projectDirectory
	m.stateMu.Unlock()

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// SetProjectDirectory stores and persists the current project directory.
func (m *Manager) SetProjectDirectory(dir string) {
	m.stateMu.Lock()
	m.projectDirectory = dir
	m.stateMu.Unlock()
	m.backend.PutString(projectPathKey, dir)
}

// NavigatorExpanded reports whether the navigator pane is expanded.
func (m *Manager) NavigatorExpanded() bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.navigatorExpanded
}

// SetNavigatorExpanded stores and persists the navigator pane state.
func (m *Manager) SetNavigatorExpanded(expanded bool) {
	m.stateMu.Lock()
	m.navigatorExpanded = expanded
	m.stateMu.Unlock()
	m.backend.PutString(navigatorExpandedKey, strconv.FormatBool(expanded))
}

// HighlightStrength returns the live scope-highlight strength cell.
func (m *Manager) HighlightStrength() *observe.Cell[int] {
	return m.highlightStrength
}

// SetHighlightStrength updates and persists the scope-highlight strength.
// Callable from any goroutine; subscribers are notified on the UI domain.
func (m *Manager) SetHighlightStrength(strength int) {
	m.backend.PutInt(highlightStrengthKey, strength)
	m.ui.RunNowOrLater(func() {
		m.highlightStrength.Set(strength)
	})
}
