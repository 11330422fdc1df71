package xlfill

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFontName is the registration name used when none is supplied.
const DefaultFontName = "CustomFont"

// systemFontCandidates are scanned when no custom font is set. TTC
// collections are skipped since neither the PDF writer nor the opentype
// parser accepts them.
var systemFontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/Library/Fonts/Arial.ttf",
	`C:\Windows\Fonts\arial.ttf`,
}

// FontManager resolves the TrueType font shared by the PDF renderer and the
// annotated QR composer. A custom font set via SetFont wins; otherwise the
// first readable system font is used.
type FontManager struct {
	mu         sync.Mutex
	customPath string
	name       string
	data       []byte
	dataPath   string
}

// NewFontManager creates a manager with no custom font.
func NewFontManager() *FontManager {
	return &FontManager{name: DefaultFontName}
}

// SetFont sets a custom font file and optional registration name.
func (m *FontManager) SetFont(path, name string) error {
	if path == "" {
		return NewError(KindValidation, "font path is required", nil)
	}
	if _, err := os.Stat(path); err != nil {
		return NewError(KindFont, fmt.Sprintf("font file %q not found", path), err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.customPath = path
	if name != "" {
		m.name = name
	}
	m.data = nil
	m.dataPath = ""
	return nil
}

// Name returns the font registration name.
func (m *FontManager) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// Path returns the custom font path, or the first available system font.
func (m *FontManager) Path() string {
	m.mu.Lock()
	custom := m.customPath
	m.mu.Unlock()
	if custom != "" {
		return custom
	}
	for _, candidate := range systemFontCandidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Bytes loads the resolved font file, caching the read.
func (m *FontManager) Bytes() ([]byte, error) {
	path := m.Path()
	if path == "" {
		return nil, NewError(KindFont, "no usable font: set one with SetFont", nil)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data != nil && m.dataPath == path {
		return m.data, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, NewError(KindFont, fmt.Sprintf("read font %q", path), err)
	}
	m.data = data
	m.dataPath = path
	return data, nil
}
