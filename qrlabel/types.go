package qrlabel

import "github.com/xiwen-haochi/xlfill2pdf/xlfill"

// Element is a drawable annotation: a TextItem or a ListBlock.
type Element interface {
	element()
}

// TextItem is a text annotation. Standalone items draw at Position; items
// inside a ListBlock ignore Position and flow into the block's grid, where
// Margin pads the item's cell.
type TextItem struct {
	Text      string
	Position  Point
	FontSize  Length
	Color     string
	Wrap      bool
	WrapWidth Length
	Margin    Margin
}

func (TextItem) element() {}

// BorderSpec describes a drawn border.
type BorderSpec struct {
	Color string
	Width Length
}

// DefaultBorder is the border used when a block asks for one without
// specifying it.
func DefaultBorder() *BorderSpec {
	return &BorderSpec{Color: "black", Width: "0.2rem"}
}

// ListBlock flows text items into a boxed grid of columns. Items have no
// absolute positions; their cells are computed from the block box, the
// column count and the margins.
type ListBlock struct {
	Items         []TextItem
	StartPosition Point
	Columns       int
	Width         Length
	Height        Length
	Margin        Margin
	OuterBorder   *BorderSpec
	InnerBorder   *BorderSpec
}

func (ListBlock) element() {}

// Config configures a Generator. Zero values fall back to the documented
// defaults.
type Config struct {
	// BackgroundWidth/Height size the canvas. Defaults: 350x180.
	BackgroundWidth  Length
	BackgroundHeight Length
	BackgroundColor  string

	// QRWidth/Height and QRPosition control the pasted QR code.
	// Defaults: 100x100 at (20, 40).
	QRWidth    Length
	QRHeight   Length
	QRPosition Point

	DefaultFontSize  Length
	DefaultFontColor string
	DefaultBold      bool

	// Border draws a frame around the whole canvas.
	Border *BorderSpec

	Fonts  *xlfill.FontManager
	Logger xlfill.Logger
}
