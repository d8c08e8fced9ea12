package prefs

import "strconv"

func recentProjectKey(i int) string {
	return recentProjectKeyPrefix + strconv.Itoa(i)
}

// loadRecentProjects reads the positional recent-project keys in order,
// skipping empty slots.
func (m *Manager) loadRecentProjects() []string {
	projects := make([]string, 0, m.recentCapacity)
	for i := 0; i < m.recentCapacity; i++ {
		if p := m.backend.GetString(recentProjectKey(i), ""); p != "" {
			projects = append(projects, p)
		}
	}
	return projects
}

// RecentProjects returns the recent-projects list, most recent first. The
// result is a copy; callers on any goroutine cannot mutate shared state.
func (m *Manager) RecentProjects() []string {
	m.recentMu.Lock()
	defer m.recentMu.Unlock()
	out := make([]string, len(m.recent))
	copy(out, m.recent)
	return out
}

// AddRecentProject moves path to the front of the recent-projects list,
// deduplicating and evicting the oldest entry past capacity, then persists
// the whole list under its positional keys. Bootstrap projects are never
// recorded.
//
// Known limitation: positional keys beyond the new length, left over from a
// previously longer list, are not cleared and will be read back on the next
// startup.
func (m *Manager) AddRecentProject(path string) {
	if m.isBootstrap != nil && m.isBootstrap(path) {
		return
	}

	m.recentMu.Lock()
	defer m.recentMu.Unlock()

	for i, p := range m.recent {
		if p == path {
			m.recent = append(m.recent[:i], m.recent[i+1:]...)
			break
		}
	}

	m.recent = append([]string{path}, m.recent...)
	if len(m.recent) > m.recentCapacity {
		m.recent = m.recent[:m.recentCapacity]
	}

	for i, p := range m.recent {
		m.backend.PutString(recentProjectKey(i), p)
	}
}
