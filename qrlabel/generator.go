package qrlabel

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/xiwen-haochi/xlfill2pdf/xlfill"
)

// Defaults for the canvas and the pasted QR code.
const (
	defaultCanvasW  = 350
	defaultCanvasH  = 180
	defaultQRSize   = 100
	defaultQRX      = 20
	defaultQRY      = 40
	defaultFontSize = 12
	fontDPI         = 72
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Generator composes annotated QR code PNGs.
type Generator struct {
	cfg   Config
	log   xlfill.Logger
	fonts *xlfill.FontManager

	mu    sync.Mutex
	ttf   *sfnt.Font
	faces map[float64]font.Face
}

// New creates a Generator.
func New(cfg Config) *Generator {
	g := &Generator{cfg: cfg, faces: make(map[float64]font.Face)}
	g.fonts = cfg.Fonts
	if g.fonts == nil {
		g.fonts = xlfill.NewFontManager()
	}
	g.log = cfg.Logger
	if g.log == nil {
		g.log = nopLogger{}
	}
	return g
}

// Generate renders the label as PNG bytes: background, optional frame, the
// QR code, then every annotation element. A malformed element is logged and
// skipped rather than failing the whole label.
func (g *Generator) Generate(qrData string, elems []Element) ([]byte, error) {
	if qrData == "" {
		return nil, xlfill.NewError(xlfill.KindValidation, "qr data is empty", nil)
	}

	canvasW, canvasH, err := g.canvasSize()
	if err != nil {
		return nil, err
	}

	bg, err := ParseColor(g.defaultString(g.cfg.BackgroundColor, "white"))
	if err != nil {
		return nil, xlfill.NewError(xlfill.KindValidation, "background color", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(canvasW), int(canvasH)))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	if g.cfg.Border != nil {
		if err := g.drawBorder(img, 0, 0, canvasW, canvasH, g.cfg.Border, canvasW, canvasH); err != nil {
			return nil, err
		}
	}

	if err := g.pasteQR(img, qrData, canvasW, canvasH); err != nil {
		return nil, err
	}

	for i, elem := range elems {
		var err error
		switch e := elem.(type) {
		case TextItem:
			err = g.drawTextItem(img, e, canvasW, canvasH)
		case *TextItem:
			err = g.drawTextItem(img, *e, canvasW, canvasH)
		case ListBlock:
			err = g.drawListBlock(img, e, canvasW, canvasH)
		case *ListBlock:
			err = g.drawListBlock(img, *e, canvasW, canvasH)
		default:
			err = fmt.Errorf("unsupported element type %T", elem)
		}
		if err != nil {
			g.log.Errorf("skipping label element %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, xlfill.NewError(xlfill.KindRender, "encode label png", err)
	}
	return buf.Bytes(), nil
}

// GenerateBase64 renders the label and returns it base64-encoded.
func (g *Generator) GenerateBase64(qrData string, elems []Element) (string, error) {
	data, err := g.Generate(qrData, elems)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// GenerateFile renders the label into a PNG file, creating parent
// directories as needed.
func (g *Generator) GenerateFile(qrData string, elems []Element, path string) error {
	data, err := g.Generate(qrData, elems)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return xlfill.NewError(xlfill.KindInternal, fmt.Sprintf("create dir for %q", path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return xlfill.NewError(xlfill.KindInternal, fmt.Sprintf("write %q", path), err)
	}
	return nil
}

// canvasSize resolves the background dimensions; relative units use the
// built-in defaults as the reference box.
func (g *Generator) canvasSize() (float64, float64, error) {
	w, err := g.cfg.BackgroundWidth.Resolve(defaultCanvasW, defaultCanvasH)
	if err != nil {
		return 0, 0, xlfill.NewError(xlfill.KindValidation, "background width", err)
	}
	h, err := g.cfg.BackgroundHeight.Resolve(defaultCanvasW, defaultCanvasH)
	if err != nil {
		return 0, 0, xlfill.NewError(xlfill.KindValidation, "background height", err)
	}
	if w <= 0 {
		w = defaultCanvasW
	}
	if h <= 0 {
		h = defaultCanvasH
	}
	return w, h, nil
}

func (g *Generator) pasteQR(img *image.RGBA, qrData string, canvasW, canvasH float64) error {
	qrW, err := g.cfg.QRWidth.Resolve(canvasW, canvasH)
	if err != nil {
		return xlfill.NewError(xlfill.KindValidation, "qr width", err)
	}
	qrH, err := g.cfg.QRHeight.Resolve(canvasW, canvasH)
	if err != nil {
		return xlfill.NewError(xlfill.KindValidation, "qr height", err)
	}
	if qrW <= 0 {
		qrW = defaultQRSize
	}
	if qrH <= 0 {
		qrH = defaultQRSize
	}

	x, y, err := g.cfg.QRPosition.Resolve(canvasW, canvasH)
	if err != nil {
		return xlfill.NewError(xlfill.KindValidation, "qr position", err)
	}
	if g.cfg.QRPosition == (Point{}) {
		x, y = defaultQRX, defaultQRY
	}

	qr, err := qrcode.New(qrData, qrcode.Low)
	if err != nil {
		return xlfill.NewError(xlfill.KindRender, "encode qr code", err)
	}

	side := int(qrW)
	if int(qrH) > side {
		side = int(qrH)
	}
	qrImg := image.Image(qr.Image(side))
	if int(qrW) != side || int(qrH) != side {
		qrImg = imaging.Resize(qrImg, int(qrW), int(qrH), imaging.Lanczos)
	}

	rect := image.Rect(int(x), int(y), int(x)+int(qrW), int(y)+int(qrH))
	draw.Draw(img, rect, qrImg, image.Point{}, draw.Over)
	return nil
}

// face returns a cached font face for the size.
func (g *Generator) face(size float64) (font.Face, error) {
	if size <= 0 {
		size = defaultFontSize
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if f, ok := g.faces[size]; ok {
		return f, nil
	}
	if g.ttf == nil {
		data, err := g.fonts.Bytes()
		if err != nil {
			return nil, err
		}
		ttf, err := opentype.Parse(data)
		if err != nil {
			return nil, xlfill.NewError(xlfill.KindFont, "parse font", err)
		}
		g.ttf = ttf
	}

	f, err := opentype.NewFace(g.ttf, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, xlfill.NewError(xlfill.KindFont, "build font face", err)
	}
	g.faces[size] = f
	return f, nil
}

// drawTextItem draws a standalone positioned text annotation.
func (g *Generator) drawTextItem(img *image.RGBA, item TextItem, canvasW, canvasH float64) error {
	if item.Text == "" {
		return fmt.Errorf("text is required")
	}
	x, y, err := item.Position.Resolve(canvasW, canvasH)
	if err != nil {
		return err
	}

	size, err := g.itemFontSize(item, canvasW, canvasH)
	if err != nil {
		return err
	}
	face, err := g.face(size)
	if err != nil {
		return err
	}
	col, err := ParseColor(g.defaultString(item.Color, g.defaultString(g.cfg.DefaultFontColor, "black")))
	if err != nil {
		return err
	}

	wrapW := canvasW - x
	if item.Wrap {
		ww, err := g.defaultLength(item.WrapWidth, "100vw").Resolve(canvasW, canvasH)
		if err != nil {
			return err
		}
		if ww > 0 {
			wrapW = ww
		}
	}

	lines := []string{item.Text}
	if item.Wrap {
		lines = wrapToWidth(face, item.Text, wrapW)
	}
	g.drawLines(img, lines, face, col, x, y)
	return nil
}

// drawLines paints wrapped lines top-down from (x, y), doubling the pass one
// pixel right when bold is configured.
func (g *Generator) drawLines(img *image.RGBA, lines []string, face font.Face, col color.RGBA, x, y float64) {
	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	for i, line := range lines {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(int(x), int(y)+ascent+i*lineH),
		}
		d.DrawString(line)
		if g.cfg.DefaultBold {
			d.Dot = fixed.P(int(x)+1, int(y)+ascent+i*lineH)
			d.DrawString(line)
		}
	}
}

func (g *Generator) itemFontSize(item TextItem, canvasW, canvasH float64) (float64, error) {
	size, err := item.FontSize.Resolve(canvasW, canvasH)
	if err != nil {
		return 0, err
	}
	if size <= 0 {
		size, err = g.cfg.DefaultFontSize.Resolve(canvasW, canvasH)
		if err != nil {
			return 0, err
		}
	}
	if size <= 0 {
		size = defaultFontSize
	}
	return size, nil
}

// drawBorder strokes a rectangle frame of the given spec.
func (g *Generator) drawBorder(img *image.RGBA, x, y, w, h float64, spec *BorderSpec, canvasW, canvasH float64) error {
	col, err := ParseColor(g.defaultString(spec.Color, "black"))
	if err != nil {
		return err
	}
	width, err := g.defaultLength(spec.Width, "0.2rem").Resolve(canvasW, canvasH)
	if err != nil {
		return err
	}
	bw := int(width)
	if bw < 1 {
		bw = 1
	}

	x0, y0, x1, y1 := int(x), int(y), int(x+w), int(y+h)
	uniform := &image.Uniform{col}
	draw.Draw(img, image.Rect(x0, y0, x1, y0+bw), uniform, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(x0, y1-bw, x1, y1), uniform, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(x0, y0, x0+bw, y1), uniform, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(x1-bw, y0, x1, y1), uniform, image.Point{}, draw.Src)
	return nil
}

func (g *Generator) defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func (g *Generator) defaultLength(v Length, fallback Length) Length {
	if v == "" {
		return fallback
	}
	return v
}

// wrapToWidth breaks text into lines no wider than maxW pixels, splitting on
// spaces where present and per rune for wide scripts.
func wrapToWidth(face font.Face, text string, maxW float64) []string {
	if text == "" {
		return nil
	}
	limit := fixed.I(int(maxW))
	if limit <= 0 || font.MeasureString(face, text) <= limit {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, unit := range splitWrapUnits(text) {
		candidate := current + unit
		if font.MeasureString(face, candidate) <= limit {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = unit
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

func splitWrapUnits(text string) []string {
	var units []string
	word := ""
	flush := func() {
		if word != "" {
			units = append(units, word)
			word = ""
		}
	}
	for _, r := range text {
		switch {
		case r == ' ':
			word += string(r)
			flush()
		case r < 0x2E80:
			word += string(r)
		default:
			flush()
			units = append(units, string(r))
		}
	}
	flush()
	return units
}
