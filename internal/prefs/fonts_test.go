package prefs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/inkwell-ide/inkwell/internal/backend"
)

func TestSetEditorFontSizeRejectsNonPositive(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	initial := m.EditorFontSize().Get()

	for _, size := range []int{0, -5} {
		m.SetEditorFontSize(size)
		if got := m.EditorFontSize().Get(); got != initial {
			t.Errorf("SetEditorFontSize(%d) changed size to %d, want unchanged %d", size, got, initial)
		}
	}
}

func TestSetEditorFontSizePersists(t *testing.T) {
	m, b := newTestManager(t, Options{})

	m.SetEditorFontSize(18)
	if got := m.EditorFontSize().Get(); got != 18 {
		t.Errorf("EditorFontSize = %d, want 18", got)
	}
	if got := b.GetInt(editorFontSizeKey, 0); got != 18 {
		t.Errorf("persisted font size = %d, want 18", got)
	}
}

func TestSetEditorFontSizeTriggersRefreshOnChangeOnly(t *testing.T) {
	refreshes := 0
	flags := DefaultFlags()
	b := backend.NewMemory(DefaultStrings(flags))
	m := New(b, inlineRunner{}, Options{
		RefreshViews: func() { refreshes++ },
	})

	m.SetEditorFontSize(20)
	if refreshes != 1 {
		t.Errorf("refreshes after change = %d, want 1", refreshes)
	}

	m.SetEditorFontSize(20) // same size
	if refreshes != 1 {
		t.Errorf("refreshes after no-op set = %d, want still 1", refreshes)
	}

	m.SetEditorFontSize(0) // rejected
	if refreshes != 1 {
		t.Errorf("refreshes after rejected set = %d, want still 1", refreshes)
	}
}

func TestStrideFontSizeClampedOnLoad(t *testing.T) {
	cases := []struct {
		persisted int
		want      int
	}{
		{999, MaxFontSize},
		{-3, MinFontSize},
		{11, 11},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("persisted=%d", tc.persisted), func(t *testing.T) {
			b := backend.NewMemory(nil)
			b.PutInt(strideFontSizeKey, tc.persisted)
			m := New(b, inlineRunner{}, Options{})

			if got := m.StrideFontSize().Get(); got != tc.want {
				t.Errorf("StrideFontSize loaded as %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStrideFontSizeIdentityStable(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	if m.StrideFontSize() != m.StrideFontSize() {
		t.Error("StrideFontSize returned two different instances")
	}
}

// TestStrideFontSizePersistsUnclamped verifies the set path persists values
// as-is: only the load path self-heals.
func TestStrideFontSizePersistsUnclamped(t *testing.T) {
	m, b := newTestManager(t, Options{})

	cell := m.StrideFontSize()
	cell.Set(14)
	if got := b.GetInt(strideFontSizeKey, 0); got != 14 {
		t.Errorf("persisted stride size = %d, want 14", got)
	}

	cell.Set(300)
	if got := b.GetInt(strideFontSizeKey, 0); got != 300 {
		t.Errorf("persisted stride size = %d, want 300 (set path does not clamp)", got)
	}
}

func TestStyleDeclarationVariants(t *testing.T) {
	m, _ := newTestManager(t, Options{})
	m.SetEditorFontSize(15)

	sizeOnly := m.StyleDeclaration(false)
	full := m.StyleDeclaration(true)

	if !strings.Contains(sizeOnly, "font-size: 15pt;") {
		t.Errorf("size-only declaration = %q, want it to carry the size", sizeOnly)
	}
	if strings.Contains(sizeOnly, "font-family") {
		t.Errorf("size-only declaration = %q, must not carry a family", sizeOnly)
	}
	if !strings.Contains(full, "font-size: 15pt;") || !strings.Contains(full, "font-family") {
		t.Errorf("full declaration = %q, want size and family", full)
	}
}

// TestStyleDeclarationTracksFontSize verifies the memoized strings are
// push-updated after first build rather than rebuilt per call.
func TestStyleDeclarationTracksFontSize(t *testing.T) {
	m, _ := newTestManager(t, Options{})

	before := m.StyleDeclaration(false)
	m.SetEditorFontSize(33)
	after := m.StyleDeclaration(false)

	if before == after {
		t.Fatalf("style declaration did not update: %q", after)
	}
	if !strings.Contains(after, "font-size: 33pt;") {
		t.Errorf("updated declaration = %q, want font-size 33pt", after)
	}
}
