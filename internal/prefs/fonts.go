package prefs

import (
	"fmt"
	"runtime"

	"github.com/inkwell-ide/inkwell/internal/observe"
)

// platformFontKey picks the font-family preference key for the running
// platform; macOS carries its own font entry.
func platformFontKey() string {
	if runtime.GOOS == "darwin" {
		return editorMacFontKey
	}
	return editorFontKey
}

// SetEditorFontSize sets the editor font size to a point size. Non-positive
// sizes are ignored. On an actual change the size is persisted, the font
// family is re-read for the current platform, and the view-refresh
// collaborator is invoked, fire-and-forget. Callable from any goroutine:
// the whole update is marshaled onto the UI domain so cell subscribers and
// the style recompute run there.
func (m *Manager) SetEditorFontSize(size int) {
	if size <= 0 {
		return
	}
	m.ui.RunNowOrLater(func() {
		if size == m.editorFontSize.Get() {
			return
		}

		m.editorFontSize.Set(size)
		m.backend.PutInt(editorFontSizeKey, size)
		m.editorFont.Set(m.backend.GetString(platformFontKey(), defaultFontFamily))

		if m.refreshViews != nil {
			m.ui.RunLater(m.refreshViews)
		}
	})
}

// EditorFontSize returns the live editor font-size cell, created during
// startup.
func (m *Manager) EditorFontSize() *observe.Cell[int] {
	return m.editorFontSize
}

// EditorFontFamily returns the live editor font-family cell.
func (m *Manager) EditorFontFamily() *observe.Cell[string] {
	return m.editorFont
}

// StrideFontSize returns the stride-editor font-size cell, creating it on
// first request. The persisted value is clamped into [MinFontSize,
// MaxFontSize] on load only; every subsequent value is persisted as-is, so
// setters are expected to pass valid sizes. UI domain only.
func (m *Manager) StrideFontSize() *observe.Cell[int] {
	m.assert()
	if m.strideFontSize == nil {
		size := m.backend.GetInt(strideFontSizeKey, DefaultStrideFontSize)
		cell := observe.NewCell(clampFontSize(size))
		cell.Subscribe(func(v int) {
			m.backend.PutInt(strideFontSizeKey, v)
		})
		m.strideFontSize = cell
	}
	return m.strideFontSize
}

func clampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}

// StyleDeclaration returns the derived editor style string, either the full
// declaration (size and family) or the size-only variant. Both variants are
// built together on first request and stay current from then on: changes to
// the font size or family push rebuilt strings. UI domain only.
func (m *Manager) StyleDeclaration(includeFamily bool) string {
	m.assert()

	m.styleMu.Lock()
	defer m.styleMu.Unlock()

	if !m.styleBuilt {
		m.rebuildStyleLocked()
		m.editorFontSize.Subscribe(func(int) { m.rebuildStyle() })
		m.editorFont.Subscribe(func(string) { m.rebuildStyle() })
		m.styleBuilt = true
	}

	if includeFamily {
		return m.styleFull
	}
	return m.styleSizeOnly
}

func (m *Manager) rebuildStyle() {
	m.styleMu.Lock()
	m.rebuildStyleLocked()
	m.styleMu.Unlock()
}

func (m *Manager) rebuildStyleLocked() {
	size := m.editorFontSize.Get()
	family := m.editorFont.Get()
	m.styleSizeOnly = fmt.Sprintf("font-size: %dpt;", size)
	m.styleFull = fmt.Sprintf("font-size: %dpt; font-family: %q;", size, family)
}
