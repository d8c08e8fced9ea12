package prefs

import (
	"strconv"

	"github.com/inkwell-ide/inkwell/internal/observe"
)

// Flag returns the value of a boolean preference. Unknown names read as
// false. Safe from any goroutine.
func (m *Manager) Flag(name string) bool {
	m.flagMu.Lock()
	defer m.flagMu.Unlock()
	return m.flags[name]
}

// Flags returns a snapshot of all known flags and their current values.
func (m *Manager) Flags() map[string]bool {
	m.flagMu.Lock()
	defer m.flagMu.Unlock()
	out := make(map[string]bool, len(m.flags))
	for name, on := range m.flags {
		out[name] = on
	}
	return out
}

// SetFlag updates a boolean preference. The in-memory value always changes;
// persistence is diff-to-default: when the new value matches the backend's
// recorded default the stored override is removed, so the backend reverts
// to default-on-read. The matching observable handle, if one was ever
// requested, is updated on the UI domain.
func (m *Manager) SetFlag(name string, on bool) {
	m.flagMu.Lock()
	def := m.backend.DefaultString(name, "")
	if def != "" && (def == "true") == on {
		m.backend.Remove(name)
	} else {
		m.backend.PutString(name, strconv.FormatBool(on))
	}
	m.flags[name] = on
	m.flagMu.Unlock()

	m.ui.RunNowOrLater(func() {
		if cell, ok := m.flagCells[name]; ok {
			cell.Set(on)
		}
	})
}

// FlagCell returns the observable handle for a flag, creating it on first
// request seeded with the flag's current value. The same instance is
// returned for the process lifetime, so every observer of a flag shares one
// handle. UI domain only.
func (m *Manager) FlagCell(name string) *observe.Cell[bool] {
	m.assert()
	cell, ok := m.flagCells[name]
	if !ok {
		cell = observe.NewCell(m.Flag(name))
		m.flagCells[name] = cell
	}
	return cell
}
