package backend

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	f1 := NewFile(path, nil)
	f1.PutString("editor.font", "Roboto Mono")
	f1.PutInt("editor.fontsize", 14)

	f2 := NewFile(path, nil)
	if got := f2.GetString("editor.font", ""); got != "Roboto Mono" {
		t.Errorf("GetString after reopen = %q, want %q", got, "Roboto Mono")
	}
	if got := f2.GetInt("editor.fontsize", 0); got != 14 {
		t.Errorf("GetInt after reopen = %d, want 14", got)
	}
}

func TestFileRemoveRevertsToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	defaults := map[string]string{"editor.autoIndent": "false"}

	f := NewFile(path, defaults)
	f.PutString("editor.autoIndent", "true")
	if got := f.GetString("editor.autoIndent", ""); got != "true" {
		t.Fatalf("GetString with override = %q, want %q", got, "true")
	}

	f.Remove("editor.autoIndent")
	if got := f.GetString("editor.autoIndent", ""); got != "false" {
		t.Errorf("GetString after remove = %q, want recorded default %q", got, "false")
	}
	if got := f.DefaultString("editor.autoIndent", ""); got != "false" {
		t.Errorf("DefaultString = %q, want %q", got, "false")
	}
}

func TestFileMalformedContentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := NewFile(path, nil)
	if got := f.GetString("anything", "fallback"); got != "fallback" {
		t.Errorf("GetString on malformed file = %q, want fallback", got)
	}
}
