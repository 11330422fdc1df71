package xlfill

import (
	"context"
	"net/http"
)

const (
	// DefaultPrefix opens a placeholder token.
	DefaultPrefix = "{{"
	// DefaultSuffix closes a placeholder token.
	DefaultSuffix = "}}"
	// DefaultQRCodeSuffix marks a placeholder handled by the QR code handler.
	DefaultQRCodeSuffix = ".qrcode"
	// DefaultImageSuffix marks a placeholder handled by the image handler.
	DefaultImageSuffix = ".image"
)

const (
	// defaultPlacementSize is the default edge length, in points, of an
	// image anchored into a cell.
	defaultPlacementSize = 100

	// Column width in Excel is expressed in character units, row height in
	// points. These factors convert a placement's pixel box into dimensions
	// that keep the anchored image inside its cell.
	colWidthPerPixel  = 1.0 / 7.0
	rowHeightPerPixel = 0.75
)

// Cell is the handler view of a matched template cell.
type Cell struct {
	Sheet string
	Axis  string
	Col   int
	Row   int
	Value string
}

// HandlerResult is what a handler substitutes into the matched cell.
// When Image is set the bytes are anchored at the cell and the cell text is
// cleared; otherwise Text replaces the cell value (ClearCell empties it).
type HandlerResult struct {
	Image     []byte
	Width     float64
	Height    float64
	Text      string
	ClearCell bool
}

// HandlerFunc resolves a placeholder whose token carries the handler's
// registered suffix. fieldName is the token up to the first dot, fieldValue
// the full token with the handler suffix stripped.
type HandlerFunc func(ctx context.Context, cell *Cell, fieldName, fieldValue string, data map[string]any) (*HandlerResult, error)

// Placement records an image anchored at a cell during a fill pass.
type Placement struct {
	Axis   string
	Col    int
	Row    int
	Image  []byte
	Width  float64
	Height float64
}

// WatermarkOptions configures the tiled text watermark stamped on each page.
type WatermarkOptions struct {
	Text  string
	Alpha float64
	Angle float64
	Color [3]uint8
}

// PDFOptions configures page composition.
type PDFOptions struct {
	PageSize   string
	Landscape  bool
	Margin     float64
	FontSize   float64
	HeaderFill bool
}

// RenderStats captures renderer output.
type RenderStats struct {
	Rows  int64
	Cells int64
	Bytes int64
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Option configures a Processor.
type Option func(*Processor)

// WithDelimiters overrides the placeholder prefix and suffix.
func WithDelimiters(prefix, suffix string) Option {
	return func(p *Processor) {
		p.prefix = prefix
		p.suffix = suffix
	}
}

// WithQRCodeSuffix overrides the suffix the default QR handler registers under.
func WithQRCodeSuffix(suffix string) Option {
	return func(p *Processor) {
		p.qrcodeSuffix = suffix
	}
}

// WithoutDefaultHandlers disables registration of the built-in QR code and
// image handlers.
func WithoutDefaultHandlers() Option {
	return func(p *Processor) {
		p.useDefaults = false
	}
}

// WithWatermark stamps every rendered page with tiled rotated text.
func WithWatermark(opts WatermarkOptions) Option {
	return func(p *Processor) {
		if opts.Alpha == 0 {
			opts.Alpha = defaultWatermarkAlpha
		}
		p.watermark = opts
	}
}

// WithPDFOptions overrides page composition defaults.
func WithPDFOptions(opts PDFOptions) Option {
	return func(p *Processor) {
		p.pdf = opts
	}
}

// WithFontManager supplies the font used for PDF text and annotations.
func WithFontManager(fm *FontManager) Option {
	return func(p *Processor) {
		p.fonts = fm
	}
}

// WithLogger attaches a logger.
func WithLogger(log Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.log = log
		}
	}
}

// WithHTTPClient overrides the client used to fetch remote templates and
// images.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Processor) {
		if client != nil {
			p.client = client
		}
	}
}

const defaultWatermarkAlpha = 0.1

// DefaultPDFOptions returns the page composition defaults: landscape Letter
// with 0.3in margins and an 8pt grid font.
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageSize:   "LETTER",
		Landscape:  true,
		Margin:     0.3 * 72,
		FontSize:   8,
		HeaderFill: true,
	}
}
