package xlfill

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFontManagerDefaults(t *testing.T) {
	fm := NewFontManager()
	if fm.Name() != DefaultFontName {
		t.Fatalf("expected default name, got %q", fm.Name())
	}
}

func TestFontManagerSetFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("not really a font"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fm := NewFontManager()
	if err := fm.SetFont(path, "STKaiti"); err != nil {
		t.Fatalf("set font: %v", err)
	}
	if fm.Name() != "STKaiti" {
		t.Fatalf("expected custom name, got %q", fm.Name())
	}
	if fm.Path() != path {
		t.Fatalf("expected custom path, got %q", fm.Path())
	}

	data, err := fm.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if string(data) != "not really a font" {
		t.Fatalf("unexpected font data %q", data)
	}
}

func TestFontManagerSetFontKeepsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fm := NewFontManager()
	if err := fm.SetFont(path, ""); err != nil {
		t.Fatalf("set font: %v", err)
	}
	if fm.Name() != DefaultFontName {
		t.Fatalf("expected default name kept, got %q", fm.Name())
	}
}

func TestFontManagerMissingFile(t *testing.T) {
	fm := NewFontManager()
	err := fm.SetFont(filepath.Join(t.TempDir(), "missing.ttf"), "")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if KindFromError(err) != KindFont {
		t.Fatalf("expected font kind, got %v", err)
	}
}

func TestFontManagerEmptyPath(t *testing.T) {
	fm := NewFontManager()
	if err := fm.SetFont("", ""); err == nil {
		t.Fatalf("expected validation error")
	}
}
